package main

import (
	"fmt"
	"strings"

	"basegraph.app/pulse/internal/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	usage := "schema <" + strings.Join(schema.Names(), "|") + ">"
	return &cobra.Command{
		Use:   usage,
		Short: "Print the JSON Schema of an output shape",
		Args:  usageArgs(1, 1, usage),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := schema.Generate(args[0])
			if err != nil {
				return fmt.Errorf("generating schema: %w", err)
			}
			return a.print(s)
		},
	}
}
