package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/store"
)

func newNormalizeCmd(opts *options) *cobra.Command {
	var write bool

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the content document in its canonical form",
		Long: `normalize reads the content document, applies the same cleanup the admin save
does, and prints the result. With --write the canonical form replaces the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			data := store.New(cfg.Paths.Data)
			doc := content.ForPersistence(data.Read())

			if write {
				if err := data.Write(doc); err != nil {
					return err
				}
				logger.Info("document normalized", zap.String("path", data.Path()), zap.Strings("languages", doc.Languages))
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")
			return errors.Wrap(enc.Encode(doc), "encode document")
		},
	}

	normalizeCmd.Flags().BoolVarP(&write, "write", "w", false, "Write the canonical document back to the data file")
	return normalizeCmd
}
