package main

import (
	"github.com/spf13/cobra"

	"github.com/fluidgravity/raychi/web/server"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server with live render streaming",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.NewServer(port).Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	return cmd
}
