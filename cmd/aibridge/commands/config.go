package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aibridge/internal/config"
	"github.com/thoreinstein/aibridge/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect aibridge configuration",
		Long: `Inspect the aibridge configuration.

The config file is config.yaml in the current directory or in
` + config.Dir() + `. Every key can be overridden with an AIBRIDGE_
environment variable, e.g. AIBRIDGE_BACKUP_RETENTION=10.`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return errors.Wrap(err, "marshaling config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return errors.Wrap(err, "writing output")
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if f := config.File(); f != "" {
				fmt.Fprintln(w, f)
				return
			}
			fmt.Fprintf(w, "%s %s\n", config.DefaultFile(), muted("(not created, using defaults)"))
		},
	}

	cmd.AddCommand(show, path)
	return cmd
}
