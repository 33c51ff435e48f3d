package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-flayyer/pkg/jsonschema"
	"github.com/goliatone/go-flayyer/pkg/schema"
)

var (
	schemaPath      string
	schemaFormat    string
	schemaComponent string
)

var shapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Print the shape variables take once received by a template",
	Long: `Reads a variables schema and prints the received shape as JSON Schema:
every leaf becomes text, no field is required and function fields are
rejected.

Example:
  flayyer-types shape --schema variables.schema.json
  flayyer-types shape --schema vars.yaml --format literal`,
	RunE: runShape,
}

func init() {
	addSchemaFlags(shapeCmd)
}

func addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Variables schema file or URL (default: any text key)")
	cmd.Flags().StringVar(&schemaFormat, "format", formatJSONSchema, "Schema format: jsonschema, literal or openapi")
	cmd.Flags().StringVar(&schemaComponent, "component", "", "Component schema name for --format openapi")
}

func runShape(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	declared, err := readSchema(ctx, schemaPath, schemaFormat, schemaComponent)
	if err != nil {
		return err
	}
	received, err := schema.Received(declared)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), jsonschema.Document(received))
}
