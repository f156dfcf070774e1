// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package school

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleJSONC = `{
	// students only rank schools
	"students": [
		{"name": "alice", "preferences": ["north", "south"]},
		{"name": "bob", "preferences": ["north", "south"]},
		{"name": "carol", "preferences": ["north"]},
		{"name": "dave", "preferences": ["south"]},
	],
	/* schools also carry a capacity */
	"schools": [
		{"name": "north", "preferences": ["bob", "alice", "carol"], "capacity": 1},
		{"name": "south", "preferences": ["alice", "dave", "bob"], "capacity": 2},
	],
}`

const sampleYAML = `
students:
  - name: alice
    preferences: [north, south]
  - name: bob
    preferences: [north, south]
  - name: carol
    preferences: [north]
  - name: dave
    preferences: [south]
schools:
  - name: north
    preferences: [bob, alice, carol]
    capacity: 1
  - name: south
    preferences: [alice, dave, bob]
    capacity: 2
`

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("data.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("DATA.YML"))
	assert.Equal(t, FormatCBOR, FormatOf("out.cbor"))
	assert.Equal(t, FormatJSON, FormatOf("data.json"))
	assert.Equal(t, FormatJSON, FormatOf("data.jsonc"))
	assert.Equal(t, FormatJSON, FormatOf("data"))
}

func TestDecode(t *testing.T) {
	t.Run("JSONC", func(t *testing.T) {
		data, err := Decode([]byte(sampleJSONC), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, sampleData(), data)
	})

	t.Run("YAML", func(t *testing.T) {
		data, err := Decode([]byte(sampleYAML), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, sampleData(), data)
	})

	t.Run("EmptyYAML", func(t *testing.T) {
		data, err := Decode(nil, FormatYAML)
		require.NoError(t, err)
		assert.Empty(t, data.Students)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := Decode([]byte(`{"students": [{"name": "a", "rank": 1}]}`), FormatJSON)
		assert.Error(t, err)

		_, err = Decode([]byte("schools:\n  - name: a\n    seats: 3\n"), FormatYAML)
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"students": [`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("CBORInput", func(t *testing.T) {
		_, err := Decode([]byte{0xa0}, FormatCBOR)
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "data.yml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0644))
	data, err := Load(file)
	require.NoError(t, err)
	assert.Len(t, data.Schools, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	alloc, err := (&Matcher{}).Match(sampleData())
	require.NoError(t, err)

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, alloc, FormatJSON))

		var got Allocation
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, alloc, &got)
		assert.Contains(t, buf.String(), `"seats_filled": 3`)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, alloc, FormatYAML))

		var got Allocation
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, alloc, &got)
	})

	t.Run("CBOR", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, alloc, FormatCBOR))

		var got map[string]interface{}
		require.NoError(t, cbor.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "students", got["proposing"])
		assert.EqualValues(t, 2, got["rounds"])
	})

	t.Run("Unsupported", func(t *testing.T) {
		assert.Error(t, Encode(&bytes.Buffer{}, alloc, "xml"))
	})
}
