package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the todoist-mcp application
var rootCmd = &cobra.Command{
	Use:   "todoist-mcp",
	Short: "MCP server exposing Todoist tools for AI assistants",
	Long: `todoist-mcp is a Model Context Protocol (MCP) server that gives AI
assistants access to Todoist: listing and creating projects, managing
tasks, and organizing labels.

It talks to the Todoist REST API using the token in the
TODOIST_API_TOKEN environment variable.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "todoist-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
