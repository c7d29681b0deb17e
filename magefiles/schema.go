//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

const schemaDir = "schema"

// Schema writes schema/metadata.<mode>.schema.json for every mode.
func Schema() error {
	if err := os.MkdirAll(schemaDir, 0o755); err != nil {
		return err
	}
	for _, mode := range metadata.Modes() {
		data, err := json.MarshalIndent(metadata.GenerateSchema(mode), "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s schema: %w", mode, err)
		}
		path := filepath.Join(schemaDir, fmt.Sprintf("metadata.%s.schema.json", mode))
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}
	return nil
}
