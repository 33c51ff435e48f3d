package main

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"
)

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func zapLocation(location string) zap.Field { return zap.String("location", location) }

func zapFormat(format string) zap.Field {
	if format == "" {
		format = formatJSONSchema
	}
	return zap.String("format", format)
}
