package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"APIDirectory/internal/query"
)

const maxDescWidth = 60

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries matching a category and search term",
	Example: `  apidir list
  apidir list --category Animals --search dog
  apidir list --search weather --json`,
	RunE: runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category facets of the catalog",
	RunE:  runCategories,
}

func init() {
	listCmd.Flags().StringP("category", "c", query.AllCategories, "category to restrict to")
	listCmd.Flags().StringP("search", "s", "", "case-insensitive search over name and description")
	listCmd.Flags().Bool("json", false, "print matching entries as JSON")
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	snap, err := s.client.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w\n%s", err, serverHint(s.client.BaseURL))
	}
	s.log.Debug("catalog loaded", zap.String("version", snap.Version), zap.Int("entries", snap.Len()))

	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	v := query.Run(snap, query.State{Category: category, Search: search})

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v.Entries)
	}
	return printView(cmd.OutOrStdout(), v)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	snap, err := s.client.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w\n%s", err, serverHint(s.client.BaseURL))
	}
	for _, f := range query.Facets(snap) {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

func printView(w io.Writer, v query.View) error {
	if v.Empty() {
		fmt.Fprintln(w, "No APIs found. Try adjusting your search or filter criteria.")
		fmt.Fprintf(w, "Showing 0 of %d APIs\n", v.Total)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Category", "Auth", "Description", "URL")
	for _, e := range v.Entries {
		auth := e.Auth
		if auth == "" {
			auth = "No"
		}
		if err := table.Append([]string{e.ID.String(), e.Name, e.Category, auth, truncate(e.Description, maxDescWidth), e.URL}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d of %d APIs\n", v.Count, v.Total)
	return err
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
