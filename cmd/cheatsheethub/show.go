package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show SLUG",
	Short: "Print a published cheatsheet in the terminal",
	Long: `Fetch a published cheatsheet from the CMS and print it in the terminal.

Example:
  cheatsheethub show git-basics`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := newContentStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := showCheatsheet(cmd.Context(), os.Stdout, contents, args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Cheatsheet %q not found\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "Failed to show cheatsheet: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showCheatsheet(ctx context.Context, w io.Writer, contents store.ContentStore, slug string) error {
	sheet, err := contents.GetCheatsheetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return renderTerminal(w, cheatsheetDocument(sheet))
}

// cheatsheetDocument lays out a cheatsheet as a single Markdown document:
// title and metadata, the body, then references and related links.
func cheatsheetDocument(sheet *model.Cheatsheet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", sheet.Title)
	if sheet.Summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", sheet.Summary)
	}

	var meta []string
	if cat, ok := sheet.CategoryItem(); ok {
		meta = append(meta, "**Category:** "+cat.Name)
	}
	if sheet.Difficulty != nil {
		meta = append(meta, "**Difficulty:** "+sheet.Difficulty.Label())
	}
	if target := sheet.Target(); target != "" {
		meta = append(meta, "**Target:** "+target)
	}
	if tags := sheet.TagItems(); len(tags) > 0 {
		names := make([]string, len(tags))
		for i, tag := range tags {
			names[i] = "#" + tag.Name
		}
		meta = append(meta, "**Tags:** "+strings.Join(names, " "))
	}
	if !sheet.DateCreated.IsZero() {
		meta = append(meta, "**Published:** "+sheet.DateCreated.Format("2006-01-02"))
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, "  \n"))
		sb.WriteString("\n\n---\n\n")
	}

	if body := strings.TrimSpace(sheet.Body); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("_No content available._\n\n")
	}

	if len(sheet.References) > 0 {
		sb.WriteString("## References\n\n")
		for _, ref := range sheet.References {
			fmt.Fprintf(&sb, "- [%s](%s)\n", ref.Label(), ref.URL)
		}
		sb.WriteString("\n")
	}

	if related := sheet.RelatedItems(); len(related) > 0 {
		sb.WriteString("## Related Cheatsheets\n\n")
		for _, r := range related {
			fmt.Fprintf(&sb, "- %s (`%s`)\n", r.Title, r.Slug)
		}
	}
	return sb.String()
}
