package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Types that need a custom wire form (for example metric values that may be
// undefined) implement json.Marshaler themselves.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// IndentJSON is JSON with two-space indentation, used for human-facing output.
type IndentJSON struct{}

// Marshal encodes the value to indented JSON.
func (IndentJSON) Marshal(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// Unmarshal decodes the JSON data into v.
func (IndentJSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json-indent").
func (IndentJSON) Name() string { return "json-indent" }

// Default is the default codec used by the library.
var Default Codec = JSON{}
