package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cheatsheethub/cheatsheethub/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources: defaults, the config file, the .env file, and the
environment. Secrets are masked. These may not reflect the values used by a
running server.

Config file location: /etc/cheatsheethub/cheatsheethub.yml (or CHEATSHEETHUB_CONFIG_PATH)

Example:
  cheatsheethub configuration show
  cheatsheethub configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(os.Stdout, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(w io.Writer, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch output {
	case "json":
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, jsonOutput)
		return nil
	case "text":
		writeConfigurationText(w, cfg)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

// writeConfigurationText prints the attribute table, coloring each source.
// Color is dropped automatically when stdout is not a terminal.
func writeConfigurationText(w io.Writer, cfg *config.Config) {
	header := color.New(color.Bold)
	sources := map[string]*color.Color{
		config.SourceDefault:     color.New(color.FgHiBlack),
		config.SourceFile:        color.New(color.FgBlue),
		config.SourceDotenv:      color.New(color.FgYellow),
		config.SourceEnvironment: color.New(color.FgGreen),
	}

	path := cfg.ConfigFilePath()
	if path == "" {
		path = "(none)"
	}
	fmt.Fprintf(w, "Config file: %s\n\n", path)
	header.Fprintf(w, "%-24s %-32s %s\n", "NAME", "VALUE", "SOURCE")
	fmt.Fprintf(w, "%-24s %-32s %s\n", "----", "-----", "------")

	for _, attr := range cfg.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(w, "%-24s %-32s ", attr.Name, value)
		if c, ok := sources[attr.Source]; ok {
			c.Fprintln(w, attr.Source)
			continue
		}
		fmt.Fprintln(w, attr.Source)
	}
}
