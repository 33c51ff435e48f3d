package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-flayyer/pkg/schema"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

// ValidateReceived checks value against the received shape of s. Every
// error found is reported, wrapped in an openapi3.MultiError.
func ValidateReceived(s schema.Schema, value any) error {
	received, err := schema.Received(s)
	if err != nil {
		return err
	}
	if bag, ok := value.(variables.Variables); ok {
		value = map[string]any(bag)
	}
	if err := ToOpenAPI(received).VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: received value: %w", err)
	}
	return nil
}
