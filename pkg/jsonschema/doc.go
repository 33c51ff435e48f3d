// Package jsonschema reads and writes variables schemas as JSON Schema.
package jsonschema
