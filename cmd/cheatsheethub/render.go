package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/cheatsheethub/cheatsheethub/pkg/markdown"
)

const terminalWrap = 100

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a Markdown file the way the site does",
	Long: `Render a Markdown file to HTML with the site renderer, or to the terminal.

Use "-" to read from stdin.

Example:
  cheatsheethub render git.md > git.html
  cheatsheethub render --terminal git.md`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		terminal, _ := cmd.Flags().GetBool("terminal")
		style, _ := cmd.Flags().GetString("style")

		source, err := readSource(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", args[0], err)
			os.Exit(1)
		}

		if terminal {
			err = renderTerminal(os.Stdout, string(source))
		} else {
			err = renderHTML(os.Stdout, source, style)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolP("terminal", "t", false, "render for the terminal instead of HTML")
	renderCmd.Flags().String("style", markdown.DefaultStyle, "code highlighting style for HTML output")
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func renderHTML(w io.Writer, source []byte, style string) error {
	renderer, err := markdown.New(markdown.WithStyle(style))
	if err != nil {
		return err
	}
	return renderer.Render(w, source)
}

func newTerminalRenderer() (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWrap),
	)
}

func renderTerminal(w io.Writer, source string) error {
	tr, err := newTerminalRenderer()
	if err != nil {
		return err
	}
	out, err := tr.Render(source)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
