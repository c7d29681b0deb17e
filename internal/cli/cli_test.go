package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nftmeta/internal/paths"
)

const swordJSON = `{"name":"Sword","description":"A sharp blade","image":"ipfs://abc",` +
	`"attributes":[{"trait_type":"Rarity","value":"Legendary"}],` +
	`"properties":{"category":"image","files":[{"uri":"ipfs://def","type":"image/png","size":2048}]}}`

type result struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes nftmeta with an isolated config directory.
func runCLI(t *testing.T, configDir, stdin string, args ...string) result {
	t.Helper()
	for _, key := range []string{"NFTMETA_MODE", "NFTMETA_FORMAT", "NFTMETA_INDENT", "NFTMETA_VERBOSE", paths.EnvConfigDir} {
		t.Setenv(key, "")
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", configDir}, args...))

	code := run(root)
	return result{stdout: out.String(), stderr: errOut.String(), code: code}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	res := runCLI(t, t.TempDir(), "", "version")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "nftmeta v")
	assert.Contains(t, res.stdout, "module: github.com/mesh-intelligence/nftmeta")
}

func TestInitIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")

	res := runCLI(t, dir, "", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Wrote")

	data, err := os.ReadFile(paths.ConfigFile(dir))
	require.NoError(t, err)
	var written configFile
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, defaultConfigFile(), written)

	require.NoError(t, os.WriteFile(paths.ConfigFile(dir), []byte("mode: strict\n"), 0o644))
	res = runCLI(t, dir, "", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "already present")

	data, err = os.ReadFile(paths.ConfigFile(dir))
	require.NoError(t, err)
	assert.Equal(t, "mode: strict\n", string(data))
}

func schemaRequired(t *testing.T, out string) []any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	req, _ := doc["required"].([]any)
	return req
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "mode: strict\n")

	t.Run("config file", func(t *testing.T) {
		res := runCLI(t, dir, "", "schema")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Contains(t, schemaRequired(t, res.stdout), "name")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"--config-dir", dir, "schema"})
		t.Setenv("NFTMETA_MODE", "permissive")

		require.Equal(t, exitSuccess, run(root))
		assert.Empty(t, schemaRequired(t, out.String()))
	})

	t.Run("flag overrides file", func(t *testing.T) {
		res := runCLI(t, dir, "", "schema", "--mode", "permissive")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Empty(t, schemaRequired(t, res.stdout))
	})

	t.Run("missing config directory is not an error", func(t *testing.T) {
		res := runCLI(t, filepath.Join(dir, "absent"), "", "schema")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Empty(t, schemaRequired(t, res.stdout))
	})
}

func TestConfigDirFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "mode: strict\n")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"schema"})
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv("NFTMETA_MODE", "")

	require.Equal(t, exitSuccess, run(root))
	assert.Contains(t, schemaRequired(t, out.String()), "name")
}

func TestInvalidSettings(t *testing.T) {
	res := runCLI(t, t.TempDir(), "", "schema", "--mode", "lenient")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "lenient")

	res = runCLI(t, t.TempDir(), "", "schema", "--format", "xml")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "xml")
}

func TestSchemaCommand(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, "", "schema", "--record", "AssetFile", "--mode", "strict")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.ElementsMatch(t, []any{"uri", "type"}, schemaRequired(t, res.stdout))

	res = runCLI(t, dir, "", "schema", "--format", "yaml")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &doc))
	assert.Contains(t, doc, "definitions")

	res = runCLI(t, dir, "", "schema", "--record", "Wallet")
	assert.Equal(t, exitUserError, res.code)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "sword.json", swordJSON)
	bad := writeFile(t, dir, "bad.json", `{"attributes":[{"trait_type":"Rarity"}]}`)
	goodYAML := writeFile(t, dir, "sword.yaml", "name: Sword\nattributes:\n  - trait_type: Rarity\n    value: Legendary\n")

	res := runCLI(t, dir, "", "check", good, goodYAML)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, good+": ok")
	assert.Contains(t, res.stdout, goodYAML+": ok")

	res = runCLI(t, dir, "", "check", good, bad)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, good+": ok")
	assert.Contains(t, res.stdout, bad+`: missing field "value"`)
	assert.Contains(t, res.stdout, bad+": schema:")
	assert.Contains(t, res.stderr, "1 of 2 documents failed")

	res = runCLI(t, dir, "", "check", "--mode", "permissive", bad)
	assert.Equal(t, exitSuccess, res.code, res.stdout)

	res = runCLI(t, dir, "", "check", "--mode", "strict", good)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, "animation_url")
}

func TestCheckStdinAndMissingFile(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, swordJSON, "check", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "-: ok")

	res = runCLI(t, dir, "{", "check", "-")
	assert.Equal(t, exitUserError, res.code)

	res = runCLI(t, dir, "", "check", filepath.Join(dir, "nope.json"))
	assert.Equal(t, exitUserError, res.code)

	res = runCLI(t, dir, "", "check")
	assert.Equal(t, exitUserError, res.code)
}

func TestCheckYAMLNonStringKeys(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "keys.yaml", "name: Sword\n1: one\n")

	res := runCLI(t, dir, "", "check", src)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "validate")
}

func TestCheckYAMLRecursiveAnchor(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "loop.yaml", "name: x\nfoo: &a [*a]\n")

	res := runCLI(t, dir, "", "check", src)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, "anchor")

	res = runCLI(t, dir, "", "show", src)
	assert.Equal(t, exitUserError, res.code)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sword.yaml", "name: Sword\nimage: ipfs://abc\n")

	res := runCLI(t, dir, "", "convert", src, "--mode", "strict")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "Sword", doc["name"])
	assert.Equal(t, "", doc["description"])
	assert.Equal(t, []any{}, doc["attributes"])
	assert.Contains(t, res.stderr, "WARN")

	res = runCLI(t, dir, "", "convert", src, "--from", "strict")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "missing field")

	res = runCLI(t, dir, "", "convert", src, "--from", "bogus")
	assert.Equal(t, exitUserError, res.code)
}

func TestConvertToYAML(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sword.json", swordJSON)

	res := runCLI(t, dir, "", "convert", src, "--format", "yaml", "--mode", "permissive")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name: Sword\n")
	assert.Contains(t, res.stdout, "type: image/png")
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, "", "new",
		"--name", "Sword", "--description", "A sharp blade", "--image", "ipfs://abc",
		"--attr", "Rarity=Legendary", "--attr", "Level=3", "--category", "image",
		"--mode", "permissive")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "Sword", doc["name"])
	assert.NotContains(t, doc, "animation_url")
	assert.Len(t, doc["attributes"], 2)
	assert.Equal(t, "image", doc["properties"].(map[string]any)["category"])

	res = runCLI(t, dir, "", "new", "--attr", "Rarity")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "trait=value")
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "art.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 5))))
	require.NoError(t, f.Close())
	return path
}

func TestNewWithFile(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir)

	res := runCLI(t, dir, "", "new", "--name", "Art", "--file", img)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"type": "image/png"`)
	assert.Contains(t, res.stdout, `"resolution": "8x5"`)

	res = runCLI(t, dir, "", "new", "--file", filepath.Join(dir, "missing.png"))
	assert.Equal(t, exitUserError, res.code)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir)

	res := runCLI(t, dir, "", "file", img, "--uri", "ipfs://art", "--cdn")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "ipfs://art", doc["uri"])
	assert.Equal(t, "image/png", doc["type"])
	assert.Equal(t, true, doc["cdn"])
	assert.Equal(t, "8x5", doc["resolution"])

	res = runCLI(t, dir, "", "file", img)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "cdn")
	assert.Contains(t, res.stdout, "file://")

	res = runCLI(t, dir, "", "file", dir)
	assert.Equal(t, exitSysError, res.code)
	assert.Contains(t, res.stderr, "not a regular file")
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sword.json", swordJSON)

	res := runCLI(t, dir, "", "show", src)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Name:          Sword")
	assert.Contains(t, res.stdout, "  Rarity: Legendary")
	assert.Contains(t, res.stdout, "Files:         1 (2.0 kB)")
	assert.Contains(t, res.stdout, "ipfs://def (image/png, 2.0 kB)")
	assert.NotContains(t, res.stdout, "Animation URL")
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sword.json", swordJSON)

	res := runCLI(t, dir, "", "check", "-v", src)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "configuration loaded")
	assert.NotContains(t, res.stdout, "configuration loaded")

	res = runCLI(t, dir, "", "check", src)
	assert.NotContains(t, res.stderr, "configuration loaded")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitSysError, exitCode(sysError(os.ErrPermission)))
	assert.Equal(t, exitUserError, exitCode(inputError(os.ErrNotExist)))
	assert.Equal(t, exitSysError, exitCode(inputError(os.ErrPermission)))
	assert.Equal(t, exitUserError, exitCode(assert.AnError))
}
