package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/ocr/tesseract"
)

type ocrOutput struct {
	DocumentType string            `json:"document_type"`
	Meta         ocr.Meta          `json:"meta"`
	RawText      string            `json:"raw_text"`
	Fields       extraction.Fields `json:"fields"`
}

func ocrCmd(engine ocr.Engine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocr IMAGE",
		Short: "Transcribe a licence image and extract its fields",
		Long:  "Runs tesseract on IMAGE and prints the transcription and fields as JSON. Requires a build with -tags ocr.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, extractor, err := extractorFromFlags(cmd)
			if err != nil {
				return err
			}
			lang, _ := cmd.Flags().GetString("lang")
			psm, _ := cmd.Flags().GetInt("psm")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res, err := engine.Recognize(ctx, image, ocr.Options{Lang: lang, PSM: psm})
			if err != nil {
				return fmt.Errorf("recognize %s: %w", args[0], err)
			}

			return writeJSON(cmd.OutOrStdout(), ocrOutput{
				DocumentType: string(docType),
				Meta:         res.Meta,
				RawText:      res.Text,
				Fields:       extractor.Extract(res.Text),
			})
		},
	}
	addTypeFlags(cmd)
	cmd.Flags().String("lang", tesseract.DefaultLang, "Tesseract language")
	cmd.Flags().Int("psm", tesseract.DefaultPSM, "Tesseract page segmentation mode")
	cmd.Flags().Duration("timeout", 30*time.Second, "Recognition timeout")
	return cmd
}
