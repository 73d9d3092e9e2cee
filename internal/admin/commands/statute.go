package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faizrashid/nazeer/internal/statute"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// NewStatuteCmd creates the statute corpus management command
func NewStatuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statute",
		Short: "Statute corpus management commands",
		Long:  "Load and query the law-information corpus consumed by the Statute Keyword Engine (C5)",
	}

	cmd.AddCommand(newStatuteLoadCmd())
	cmd.AddCommand(newStatuteSearchCmd())

	return cmd
}

func newStatuteLoadCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a JSON statute corpus file and report how it parses",
		Long:  "Parse a JSON array of statute entries, validate required fields, and report the count that would be upserted",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadStatuteFile(file)
			if err != nil {
				return err
			}

			store := storage.NewMemoryStatuteStore()
			ctx := context.Background()
			loaded := 0
			for _, entry := range entries {
				if entry.Slug == "" || entry.Title == "" {
					fmt.Fprintf(os.Stderr, "skipping entry with missing slug/title: %+v\n", entry)
					continue
				}
				if err := store.Upsert(ctx, entry); err != nil {
					return fmt.Errorf("failed to upsert %s: %w", entry.Slug, err)
				}
				loaded++
			}

			fmt.Printf("✓ Parsed %d entries, loaded %d into the corpus store\n", len(entries), loaded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON statute corpus file")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newStatuteSearchCmd() *cobra.Command {
	var file, query, searchType string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a query against a statute corpus file through C5",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadStatuteFile(file)
			if err != nil {
				return err
			}

			store := storage.NewMemoryStatuteStore()
			ctx := context.Background()
			for _, entry := range entries {
				if err := store.Upsert(ctx, entry); err != nil {
					return err
				}
			}

			engine := statute.NewEngine(store)
			matches, err := engine.Search(ctx, query, statute.SearchType(searchType))
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			for _, m := range matches {
				fmt.Printf("%-30s relevance=%.1f\n", m.Entry.Title, m.Relevance)
			}
			fmt.Printf("%d matches\n", len(matches))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON statute corpus file")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query text")
	cmd.Flags().StringVarP(&searchType, "type", "t", string(statute.SearchTypeAll), "Search type: all, title, sections, tags, jurisdiction")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("query")

	return cmd
}

func loadStatuteFile(path string) ([]*models.StatuteEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []*models.StatuteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse statute corpus JSON: %w", err)
	}
	return entries, nil
}
