// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// newDialectsCommand lists the supported dialect URIs as a markdown table.
func newDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported JSON Schema dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
			)
			table.Header([]string{"Dialect URI", "Ordinal", "Compilation"})

			var rows [][]string
			for _, uri := range dialect.URIs() {
				ordinal, _ := dialect.Ordinal(uri)
				mode := "pinned"
				if dialect.Resolve(uri) == dialect.Unspecified {
					mode = "schema-declared"
				}
				rows = append(rows, []string{uri, fmt.Sprintf("%d", ordinal), mode})
			}

			table.Bulk(rows)
			table.Render()
			return nil
		},
	}
}
