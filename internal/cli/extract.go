package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"erepo/internal/upload"
)

func newExtractCmd(app *App) *cobra.Command {
	var docType string
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract bibliographic metadata from a document",
		Long: `Uploads a document to the metadata-extraction helper and prints the
fields it found. The extraction runs in an external AI service; results
carry a confidence score and should be reviewed before use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if docType != "book" && docType != "paper" {
				return fmt.Errorf("--type must be book or paper")
			}
			doc, err := upload.Open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()
			if err := upload.ValidateDocument(doc); err != nil {
				return err
			}

			meta, err := app.client.ExtractMetadata(cmd.Context(), docType, doc.Name, doc.Reader())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "confidence: %.0f%% (%s)\n", meta.Confidence*100, confidenceBand(meta.Confidence))
			printField(out, "title", meta.Title)
			printField(out, "author", meta.Author)
			printField(out, "publisher", meta.Publisher)
			printField(out, "journal", meta.Journal)
			if meta.Year > 0 {
				fmt.Fprintf(out, "year:       %d\n", meta.Year)
			}
			printField(out, "isbn", meta.ISBN)
			printField(out, "issn", meta.ISSN)
			printField(out, "keywords", meta.Keywords)
			printField(out, "abstract", meta.Abstract)
			return nil
		},
	}
	cmd.Flags().StringVar(&docType, "type", "book", "extraction profile: book or paper")
	return cmd
}

func confidenceBand(c float64) string {
	switch {
	case c >= 0.8:
		return "high"
	case c >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

func printField(out io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "%-11s %s\n", name+":", value)
}
