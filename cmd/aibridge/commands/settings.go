package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/backup"
	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/format"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/pkg/fileutil"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or edit a platform's settings file",
		Long: `Read or edit single values of a platform's project settings file using
dotted paths such as "env.API_URL" or "agent.default_model.model".`,
	}

	get := &cobra.Command{
		Use:   "get <platform> <path>",
		Short: "Print one settings value",
		Example: `  aibridge settings get claude model
  aibridge settings get codex project.project_doc_max_bytes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.adapter(args[0])
			if err != nil {
				return err
			}
			cfg := ad.LoadConfig(a.projectDir)
			if cfg == nil {
				return errors.NewUserError(
					errors.Wrapf(errors.ErrNotFound, "no %s settings in %s", args[0], a.projectDir),
					"Run: aibridge show "+args[0])
			}

			v, ok := format.LookupPath(cfg, args[1])
			if !ok {
				return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "%s is not set", args[1]), "")
			}

			w := cmd.OutOrStdout()
			if s, ok := v.(string); ok {
				fmt.Fprintln(w, s)
				return nil
			}
			return writeJSON(w, v)
		},
	}

	set := &cobra.Command{
		Use:   "set <platform> <path> <value>",
		Short: "Change one settings value in a JSON settings file",
		Long: `Change one value in a JSON settings file, keeping the order and layout of
everything else. The value is parsed as JSON when possible (true, 3,
["a"]) and stored as a string otherwise. The file is backed up first when
backups are enabled.`,
		Example: `  aibridge settings set claude model claude-sonnet-4
  aibridge settings set zed agent.enabled true`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, key := args[0], args[1]
			ad, err := a.adapter(name)
			if err != nil {
				return err
			}
			if ad.ConfigFormat() != format.NameJSON {
				return errors.NewUserError(
					errors.Newf("%s settings are %s, only JSON files can be edited", name, ad.ConfigFormat()), "")
			}
			if ad.ConfigPaths().Project == "" {
				return errors.NewUserError(errors.Newf("%s has no project settings file", name), "")
			}

			p, err := paths.ProjectPath(a.projectDir, ad.ConfigPaths().Project)
			if err != nil {
				return errors.NewSystemError(err, "")
			}

			var data []byte
			if paths.Exists(p) {
				if data, err = fileutil.ReadFileWithLimit(p); err != nil {
					return errors.NewSystemError(err, "")
				}
			}

			out, err := format.SetPath(data, key, parseValue(args[2]))
			if err != nil {
				return errors.NewUserError(errors.Wrapf(err, "editing %s", a.rel(p)), "Fix the file with: aibridge doctor")
			}

			if a.cfg.Backup.Enabled {
				if _, err := backup.NewSession(a.backups, a.projectDir).Ensure(name, []string{p}); err != nil {
					return errors.NewSystemError(err, "")
				}
			}
			if err := fileutil.WriteFileAll(p, out); err != nil {
				return errors.NewSystemError(err, "Check the file permissions")
			}

			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s set %s in %s\n", success("✓"), key, a.rel(p))
			}
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

// parseValue reads s as a JSON literal, falling back to the plain string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

