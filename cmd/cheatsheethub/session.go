package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage editor sessions",
	Long:  `Manage editor session tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'session' requires a subcommand (issue)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
