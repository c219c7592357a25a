package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluidgravity/raychi/pkg/scene"
)

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.BuiltinNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
