package metadata

import (
	"fmt"
	"strings"
)

// Mode is the optionality regime applied to a document. Modes are
// ordered from least to most strict.
type Mode int

// Policy modes.
const (
	// ModePermissive makes every field optional.
	ModePermissive Mode = iota
	// ModeSemiStrict requires the text fields of Attribute, Properties
	// and AssetFile; Metadata fields stay optional.
	ModeSemiStrict
	// ModeStrict additionally requires every Metadata field.
	ModeStrict
)

// modeNever marks a field that no mode requires.
const modeNever Mode = ModeStrict + 1

// DefaultMode is used by the encoding/json and yaml.v3 hooks on the
// record types.
const DefaultMode = ModeSemiStrict

var modeNames = map[Mode]string{
	ModePermissive: "permissive",
	ModeSemiStrict: "semi-strict",
	ModeStrict:     "strict",
}

// Modes returns all policy modes from least to most strict.
func Modes() []Mode {
	return []Mode{ModePermissive, ModeSemiStrict, ModeStrict}
}

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts a mode name to a Mode. Matching ignores case and
// accepts "semistrict" and "semi_strict" as spellings of "semi-strict".
// Returns ErrUnknownMode for anything else.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permissive":
		return ModePermissive, nil
	case "semi-strict", "semistrict", "semi_strict":
		return ModeSemiStrict, nil
	case "strict":
		return ModeStrict, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler so modes read naturally
// in config files.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
