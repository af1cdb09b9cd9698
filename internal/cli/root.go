// Package cli is the offline dlscan tool: field extraction from transcribed
// text or from an image, without the HTTP server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/ocr/tesseract"
)

// Deps are the collaborators of the commands. Zero values select the
// defaults.
type Deps struct {
	Engine ocr.Engine
}

// NewRootCommand builds the dlscan command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Engine == nil {
		deps.Engine = tesseract.New()
	}

	root := &cobra.Command{
		Use:           "dlscan",
		Short:         "Driver's licence field extraction",
		Long:          "Reads Ivorian (civ) and Malian (mali) driver's licences from OCR text or images.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(extractCmd())
	root.AddCommand(ocrCmd(deps.Engine))
	root.AddCommand(lexiconCmd())
	return root
}

// Execute runs the command tree against the process arguments.
func Execute() int {
	root := NewRootCommand(Deps{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func addTypeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Document type: civ or mali")
	cmd.Flags().StringP("lexicon", "l", "", "YAML lexicon overriding the default word lists")
	_ = cmd.MarkFlagRequired("type")
}

// extractorFromFlags resolves --type and --lexicon.
func extractorFromFlags(cmd *cobra.Command) (extraction.DocumentType, extraction.Extractor, error) {
	rawType, _ := cmd.Flags().GetString("type")
	lexiconFile, _ := cmd.Flags().GetString("lexicon")

	docType, err := extraction.ParseDocumentType(rawType)
	if err != nil {
		return "", nil, err
	}
	lex, err := extraction.LoadLexiconFile(lexiconFile)
	if err != nil {
		return "", nil, err
	}
	registry, err := extraction.NewRegistry(lex)
	if err != nil {
		return "", nil, err
	}
	extractor, err := registry.For(docType)
	if err != nil {
		return "", nil, err
	}
	return docType, extractor, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
