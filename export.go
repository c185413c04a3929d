// File: jitflags/export.go
package jitflags

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// effectiveValues snapshots the current value of every flag keyed by its
// external name, triggering initialization if needed.
func effectiveValues() map[string]any {
	initOnce.Do(initialize)

	values := make(map[string]any, len(global.flags))
	for _, f := range global.flags {
		values[f.Name] = f.value.Get()
	}
	return values
}

// Scan decodes the effective (post-override) flag values into the target,
// which must be a non-nil pointer to a struct or map. Struct fields are
// matched to external flag names through the "toml" tag.
func Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(effectiveValues()); err != nil {
		return fmt.Errorf("failed to decode flag values into %T: %w", target, err)
	}
	return nil
}

// WriteEffective writes the effective flag values to a file for debugging
// and support bundles. The format follows the file extension: TOML for
// .toml/.tml, JSON for .json, YAML for .yaml/.yml. The write is atomic. The
// output is a one-way dump; nothing in this package reads it back.
func WriteEffective(path string) error {
	values := effectiveValues()

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".tml":
		var buf bytes.Buffer
		encoder := toml.NewEncoder(&buf)
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to marshal flag values to TOML: %w", err)
		}
		data = buf.Bytes()
	case ".json":
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal flag values to JSON: %w", err)
		}
		data = append(out, '\n')
	case ".yaml", ".yml":
		out, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to marshal flag values to YAML: %w", err)
		}
		data = out
	default:
		return fmt.Errorf("unable to determine output format for file '%s'", path)
	}

	return atomicWriteFile(path, data)
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Debug returns a formatted report of every flag and its effective value, in
// descriptor-list order.
func Debug() string {
	initOnce.Do(initialize)

	var b strings.Builder
	b.WriteString("JIT flags:\n")
	for _, f := range global.flags {
		b.WriteString(fmt.Sprintf("  %s = %s\n", f.Name, f.value.String()))
	}
	return b.String()
}
