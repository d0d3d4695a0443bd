package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ZacxDev/commands-site/editor"
)

func newEditCmd(opts *options) *cobra.Command {
	var (
		lang    string
		rawJSON bool
		remove  bool
	)

	editCmd := &cobra.Command{
		Use:   "edit <path> [value]",
		Short: "Change one field of a translation",
		Long: `edit sets a field of one translation by dotted path and saves the normalized
document, e.g.

  commands-site edit --lang en hero.title "MoonLand commands"
  commands-site edit --json guide.steps.0.commands '["/spawn", "/home"]'
  commands-site edit --delete hero.logo`,
		Args: func(cmd *cobra.Command, args []string) error {
			if remove {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateWorkspace(opts, "document edited", func(ws *editor.Workspace) error {
				if lang != "" {
					if err := ws.SetLanguage(lang); err != nil {
						return err
					}
				}
				switch {
				case remove:
					return ws.Delete(args[0])
				case rawJSON:
					return ws.SetRaw(args[0], args[1])
				default:
					return ws.Set(args[0], args[1])
				}
			})
		},
	}

	editCmd.Flags().StringVarP(&lang, "lang", "l", "", "Translation to edit (defaults to the default language)")
	editCmd.Flags().BoolVar(&rawJSON, "json", false, "Treat the value as a JSON fragment")
	editCmd.Flags().BoolVar(&remove, "delete", false, "Remove the field instead of setting it")
	return editCmd
}
