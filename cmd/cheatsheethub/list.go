package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cheatsheethub/cheatsheethub/pkg/model"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	slugStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	summaryStyle  = lipgloss.NewStyle().PaddingLeft(2)
	metaStyle     = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#8b949e"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#8b949e"))

	difficultyColors = map[model.Difficulty]lipgloss.Color{
		model.DifficultyBeginner:     lipgloss.Color("#3fb950"),
		model.DifficultyIntermediate: lipgloss.Color("#d29922"),
		model.DifficultyAdvanced:     lipgloss.Color("#f85149"),
	}
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published cheatsheets",
	Long: `List published cheatsheets, newest first.

Example:
  cheatsheethub list
  cheatsheethub list --category git --limit 10
  cheatsheethub list --search docker`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := store.ListOptions{}
		opts.Category, _ = cmd.Flags().GetString("category")
		opts.Tag, _ = cmd.Flags().GetString("tag")
		opts.Search, _ = cmd.Flags().GetString("search")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		contents, err := newContentStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := listCheatsheets(cmd.Context(), os.Stdout, contents, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list cheatsheets: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("category", "c", "", "only cheatsheets in this category slug")
	listCmd.Flags().StringP("tag", "t", "", "only cheatsheets with this tag slug")
	listCmd.Flags().StringP("search", "s", "", "full-text search term")
	listCmd.Flags().IntP("limit", "l", store.DefaultListLimit, "maximum number of cheatsheets")
}

func listCheatsheets(ctx context.Context, w io.Writer, contents store.ContentStore, opts store.ListOptions) error {
	sheets, err := contents.ListCheatsheets(ctx, opts)
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("No cheatsheets found."))
		return nil
	}
	for i, sheet := range sheets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, formatListEntry(sheet))
	}
	return nil
}

func formatListEntry(sheet model.Cheatsheet) string {
	lines := []string{titleStyle.Render(sheet.Title) + " " + slugStyle.Render("("+sheet.Slug+")")}
	if sheet.Summary != "" {
		lines = append(lines, summaryStyle.Render(sheet.Summary))
	}

	var meta []string
	if cat, ok := sheet.CategoryItem(); ok {
		meta = append(meta, categoryStyle.Render(cat.Name))
	}
	if d := sheet.Difficulty; d != nil {
		meta = append(meta, lipgloss.NewStyle().Foreground(difficultyColors[*d]).Render(d.Label()))
	}
	if target := sheet.Target(); target != "" {
		meta = append(meta, target)
	}
	for _, tag := range sheet.TagItems() {
		meta = append(meta, lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Foreground())).Render("#"+tag.Name))
	}
	if !sheet.DateCreated.IsZero() {
		meta = append(meta, sheet.DateCreated.Format("2006-01-02"))
	}
	if len(meta) > 0 {
		lines = append(lines, metaStyle.Render(strings.Join(meta, " · ")))
	}
	return strings.Join(lines, "\n")
}
