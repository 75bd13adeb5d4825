package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/uistate/internal/server"
	"github.com/mj1618/uistate/internal/state"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the state tools",
	Long: `Start a Model Context Protocol (MCP) server bound to one driver. Agents call
State-Tool (with use_vision for an annotated screenshot) and Element-Tool to
resolve a number to its bounding box and center.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uistate serve --platform android
  uistate serve --platform chrome --browser-url http://127.0.0.1:9222 --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Float64("scale", 0, "Resize screenshots by this factor before annotating (0 keeps them)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	scale, _ := cmd.Flags().GetFloat64("scale")

	d, cleanup, err := openDriver()
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := state.NewEngine(engineOptions(d.Platform(), scale), logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	return server.New(engine, d, logger).Serve(server.Config{Transport: transport, Port: port})
}
