package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dlscan/internal/extraction"
	"dlscan/internal/translate"
)

type extractOutput struct {
	DocumentType string            `json:"document_type"`
	Fields       extraction.Fields `json:"fields"`
	FieldsFR     *translate.Sheet  `json:"fields_fr,omitempty"`
	FieldsEN     *translate.Sheet  `json:"fields_en,omitempty"`
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract fields from OCR text",
		Long:  "Reads transcribed licence text from a file, or from stdin when the file is omitted or '-', and prints the fields as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, extractor, err := extractorFromFlags(cmd)
			if err != nil {
				return err
			}
			withSheets, _ := cmd.Flags().GetBool("sheets")
			categories, _ := cmd.Flags().GetStringSlice("categories")

			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			out := extractOutput{
				DocumentType: string(docType),
				Fields:       extractor.Extract(text),
			}
			if withSheets {
				fr, en, err := translate.Build(docType, out.Fields, categories)
				if err != nil {
					return err
				}
				out.FieldsFR, out.FieldsEN = &fr, &en
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	addTypeFlags(cmd)
	cmd.Flags().Bool("sheets", false, "Also print the French and English sheets")
	cmd.Flags().StringSlice("categories", []string{"A", "B", "C", "D", "E"}, "Licence categories printed in sheet headers")
	return cmd
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
