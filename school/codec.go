// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package school

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json" // comments and trailing commas are accepted on input
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor" // output only
)

// FormatOf guesses the format from a file extension, JSON by default.
func FormatOf(file string) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	}
	return FormatJSON
}

// Decode parses students and schools records.
func Decode(data []byte, format Format) (*Data, error) {
	var d Data

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&d); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	return &d, nil
}

func Load(file string) (*Data, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	d, err := Decode(data, FormatOf(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return d, nil
}

// Encode writes an allocation as JSON, YAML or CBOR.
func Encode(w io.Writer, alloc *Allocation, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "   ")
		return encoder.Encode(alloc)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(alloc); err != nil {
			return err
		}
		return encoder.Close()
	case FormatCBOR:
		data, err := cbor.Marshal(alloc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}
