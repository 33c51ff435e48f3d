package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/props"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

var (
	decodeQuery     string
	decodeUserAgent string
	decodeStrict    bool
	decodeStripHTML bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a render query into template props",
	Long: `Decodes a render URL query string the way a rendering host does and
prints the props a template would receive.

Reserved keys: _w, _h, _size, _ua, _lang, _id, _tags.

Example:
  flayyer-types decode --schema vars.json --query 'title=Hello&_size=STORY'`,
	RunE: runDecode,
}

func init() {
	addSchemaFlags(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeQuery, "query", "q", "", "Query string or full render URL")
	decodeCmd.Flags().StringVar(&decodeUserAgent, "user-agent", "", "User-Agent header used when the query has no _ua")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "Report undeclared variables")
	decodeCmd.Flags().BoolVar(&decodeStripHTML, "strip-html", false, "Strip markup from variables")
}

func runDecode(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	declared, err := readSchema(ctx, schemaPath, schemaFormat, schemaComponent)
	if err != nil {
		return err
	}
	values, err := parseQuery(decodeQuery)
	if err != nil {
		return err
	}

	var opts []variables.Option
	if decodeStrict {
		opts = append(opts, variables.WithStrict())
	}
	if decodeStripHTML {
		opts = append(opts, variables.WithHTMLStripping())
	}

	p, err := props.FromQuery(declared, values, props.WithVariableOptions(opts...))
	if err != nil {
		var issues variables.Issues
		if !errors.As(err, &issues) {
			return err
		}
		for _, issue := range issues {
			logger.Warn("variable dropped", zap.String("field", issue.Field), zap.String("reason", issue.Message))
		}
	}
	if p.Agent.Empty() && decodeUserAgent != "" {
		p.Agent = agent.FromUserAgent(decodeUserAgent)
	}
	return writeJSON(cmd.OutOrStdout(), p)
}

func parseQuery(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "?"); idx >= 0 {
		raw = raw[idx+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	return values, nil
}
