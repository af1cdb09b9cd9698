package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dlscan/internal/extraction"
)

func lexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Print the lexicon as YAML",
		Long:  "Prints the default word lists, or the result of merging --lexicon over them, as a starting point for a custom lexicon file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lexiconFile, _ := cmd.Flags().GetString("lexicon")
			lex, err := extraction.LoadLexiconFile(lexiconFile)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(lex); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringP("lexicon", "l", "", "YAML lexicon to merge over the defaults")
	return cmd
}
