package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/convert"
	"github.com/thoreinstein/aibridge/internal/errors"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported platforms",
		Long: `List every enabled platform with its settings file, settings format and
instruction files. Platforms marked with "settings" also convert their
settings file; the others convert instructions only.`,
		Example: `  aibridge list
  aibridge list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metas := a.registry.ListWithMeta()
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, metas)
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				bold("NAME"), bold("PLATFORM"), bold("CONFIG"), bold("FORMAT"), bold("CONVERTS"))
			for _, m := range metas {
				cfgPath := m.Config.Paths.Project
				if cfgPath == "" {
					cfgPath = muted("-")
				}
				converts := "instructions"
				if convert.Supports(m.Name) {
					converts = "instructions, settings"
				}
				fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
					heading(m.Name), m.Icon, m.DisplayName, cfgPath, m.Config.Format, converts)
			}
			return errors.Wrap(tw.Flush(), "writing output")
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}
