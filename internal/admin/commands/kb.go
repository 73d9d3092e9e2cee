package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faizrashid/nazeer/internal/chunk"
	"github.com/faizrashid/nazeer/internal/ingest"
	"github.com/faizrashid/nazeer/internal/observability"
	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// NewKBCmd creates the knowledge-base maintenance command
func NewKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Knowledge-base maintenance commands",
		Long:  "Drive the Knowledge Ingestor (C3) against a single case file and inspect the resulting chunk store",
	}

	cmd.AddCommand(newKBIngestCmd())
	cmd.AddCommand(newKBStatsCmd())

	return cmd
}

// caseFixture is the on-disk shape accepted by `kb ingest`: a case plus the
// related rows ProcessCaseForQA pulls through CaseReadStore.
type caseFixture struct {
	Case     *models.Case          `json:"case"`
	Detail   *models.CaseDetail    `json:"detail"`
	Orders   []*models.Order       `json:"orders"`
	Comments []*models.Comment     `json:"comments"`
	Parties  []*models.CaseParty   `json:"parties"`
	Docs     []*models.DocumentText `json:"document_texts"`
}

func newKBIngestCmd() *cobra.Command {
	var file string
	var force bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run a single case fixture through the Knowledge Ingestor",
		Long:  "Load a case fixture JSON file, chunk it, and report the resulting KB chunk count",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			var fixture caseFixture
			if err := json.Unmarshal(data, &fixture); err != nil {
				return fmt.Errorf("failed to parse case fixture JSON: %w", err)
			}
			if fixture.Case == nil || fixture.Case.ID == "" {
				return fmt.Errorf("fixture is missing a case.id")
			}

			cases := storage.NewMemoryCaseReadStore()
			cases.Seed(fixture.Case, fixture.Detail, fixture.Orders, fixture.Comments, fixture.Parties, fixture.Docs)

			chunks := storage.NewMemoryKBChunkStore()
			procLog := storage.NewMemoryProcessingLogStore()
			logger := observability.NewLogger("info", "text")

			ingestor := ingest.NewIngestor(cases, chunks, procLog, chunk.NewChunker(chunk.DefaultConfig()), logger)

			result, err := ingestor.ProcessCaseForQA(context.Background(), fixture.Case.ID, force)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}
			if !result.Success {
				return fmt.Errorf("ingestion did not complete successfully for case %s", fixture.Case.ID)
			}
			if result.Skipped {
				fmt.Printf("case %s already ingested at this rules version; skipped (use --force to reprocess)\n", fixture.Case.ID)
				return nil
			}

			all, _ := chunks.Find(context.Background(), storage.KBChunkFilter{SourceCaseID: fixture.Case.ID})
			fmt.Printf("✓ Ingested case %s: %d chunks written\n", fixture.Case.ID, result.ChunksWritten)
			for _, c := range all {
				fmt.Printf("  - %s (%s, paragraph %d, relevance=%.2f)\n", c.ID, c.DocumentType, c.ParagraphNo, c.LegalRelevanceScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a case fixture JSON file")
	cmd.Flags().BoolVar(&force, "force", false, "Bypass the idempotency check and reprocess the case")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newKBStatsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report chunk counts from a KB chunk export file",
		Long:  "Load a JSON array of KBChunk rows and report counts by source type and legal domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			var rows []*models.KBChunk
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("failed to parse KB chunk export JSON: %w", err)
			}

			byType := make(map[models.SourceType]int)
			byDomain := make(map[string]int)
			for _, c := range rows {
				byType[c.SourceType]++
				if c.LegalDomain != "" {
					byDomain[c.LegalDomain]++
				}
			}

			fmt.Printf("%d chunks total\n\nBy source type:\n", len(rows))
			for t, n := range byType {
				fmt.Printf("  %-12s %d\n", t, n)
			}
			fmt.Println("\nBy legal domain:")
			for d, n := range byDomain {
				fmt.Printf("  %-20s %d\n", d, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a KB chunk export JSON file")
	cmd.MarkFlagRequired("file")

	return cmd
}
