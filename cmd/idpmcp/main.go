package main

import (
	"fmt"
	"os"
)

const version = "0.2.0"

type command interface {
	Name() string
	Init([]string) error
	Run() error
}

func main() {
	cmds := []command{
		newRefreshCommand(),
		newStatusCommand(),
		newConfigureCommand(),
		newLoginCommand(),
		newCheckCommand(),
	}

	if len(os.Args) < 2 {
		printUsage(cmds)
		os.Exit(1)
	}

	subcommand := os.Args[1]

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize %s: %v\n", cmd.Name(), err)
				os.Exit(1)
			}
			if err := cmd.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
	printUsage(cmds)
	os.Exit(1)
}

func printUsage(cmds []command) {
	fmt.Fprintf(os.Stderr, "Usage: idpmcp <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Manage the idp-bedrock MCP server entry and its credentials\n\n")
	fmt.Fprintf(os.Stderr, "Available commands:\n")
	fmt.Fprintf(os.Stderr, "  refresh      Rotate the bearer token in the MCP settings file\n")
	fmt.Fprintf(os.Stderr, "  status       Show the configured server entry and token state\n")
	fmt.Fprintf(os.Stderr, "  configure    Write a complete idp-bedrock server entry\n")
	fmt.Fprintf(os.Stderr, "  login        Mint a fresh bearer token and store it in Secrets Manager\n")
	fmt.Fprintf(os.Stderr, "  check        Connect to the MCP server and list its tools\n\n")
	fmt.Fprintf(os.Stderr, "Use 'idpmcp <command> -h' for command-specific help\n")
}
