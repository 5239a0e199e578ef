package main

import (
	"github.com/panbanda/timelapse/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes repository
timelines as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "timelapse": {
        "command": "timelapse",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - build_timeline     Frames of the file tree per day, week or month
  - get_date_range     First and last commit timestamps
  - get_contributors   Authors in order of first appearance
  - tree_to_nodes      Flattened node list of one frame`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	ctx, cancel := signalContext(c.Context)
	defer cancel()

	server := mcpserver.NewServer(version,
		mcpserver.WithConfig(appConfig(c)),
		mcpserver.WithLogger(appLogger(c)),
	)
	return server.Run(ctx)
}
