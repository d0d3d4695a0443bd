package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/editor"
	"github.com/ZacxDev/commands-site/store"
)

func newLangCmd(opts *options) *cobra.Command {
	langCmd := &cobra.Command{
		Use:   "lang",
		Short: "List and manage the document's languages",
	}

	langCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the configured languages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := opts.load()
				if err != nil {
					return err
				}
				doc := content.ForDisplay(store.New(cfg.Paths.Data).Read())
				labels := content.LoadLabels(cfg.Paths.LanguageLabels)
				for _, code := range doc.Languages {
					line := fmt.Sprintf("%s\t%s", code, labels.Display(code))
					if code == doc.DefaultLanguage {
						line += "\t(default)"
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			},
		},
		newLangAddCmd(opts),
		&cobra.Command{
			Use:   "remove <code>",
			Short: "Remove a language and its translation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateWorkspace(opts, "language removed", func(ws *editor.Workspace) error {
					return ws.RemoveLanguage(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "default <code>",
			Short: "Make a language the default",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateWorkspace(opts, "default language changed", func(ws *editor.Workspace) error {
					if err := ws.SetLanguage(args[0]); err != nil {
						return err
					}
					ws.SetDefault()
					return nil
				})
			},
		},
	)
	return langCmd
}

func newLangAddCmd(opts *options) *cobra.Command {
	var from string

	addCmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a language as a copy of another translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateWorkspace(opts, "language added", func(ws *editor.Workspace) error {
				if from != "" {
					if err := ws.SetLanguage(from); err != nil {
						return err
					}
				}
				return ws.AddLanguage(args[0])
			})
		},
	}

	addCmd.Flags().StringVar(&from, "from", "", "Language to copy (defaults to the default language)")
	return addCmd
}

// updateWorkspace loads the document into a workspace, applies change and
// saves the normalized result.
func updateWorkspace(opts *options, message string, change func(ws *editor.Workspace) error) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	data := store.New(cfg.Paths.Data)
	ws := editor.Load(data)
	if err := change(ws); err != nil {
		return err
	}
	if err := ws.Save(data); err != nil {
		return err
	}
	logger.Info(message,
		zap.String("path", data.Path()),
		zap.String("language", ws.Active()),
		zap.Strings("languages", ws.Languages()),
	)
	return nil
}
