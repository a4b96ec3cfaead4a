package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/backup"
	"github.com/thoreinstein/aibridge/internal/errors"
)

// backupOutput represents a single backup in JSON output.
type backupOutput struct {
	Platform    string    `json:"platform"`
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProjectDir  string    `json:"project_dir,omitempty"`
	FileCount   int       `json:"file_count"`
	ToolVersion string    `json:"tool_version"`
}

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage backups taken before conversions",
		Long: `Manage the backups "convert" takes before it overwrites files.

Backups are grouped by the platform that was converted to, newest first.
Only the most recent backups are kept; see backup.retention in the config.`,
	}
	cmd.AddCommand(newBackupListCmd(a), newBackupPruneCmd(a), newBackupRestoreCmd(a))
	return cmd
}

func newBackupListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [platform]",
		Short: "List available backups",
		Example: `  # List all backups
  aibridge backup list

  # List backups taken for Codex CLI
  aibridge backup list codex --json

  See Also: aibridge backup restore`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.listBackups(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}
			return printBackups(w, out)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (a *app) listBackups(args []string) ([]backupOutput, error) {
	platforms := args
	if len(platforms) == 0 {
		var err error
		if platforms, err = a.backups.Platforms(); err != nil {
			return nil, errors.NewSystemError(err, "")
		}
	}

	out := make([]backupOutput, 0)
	for _, p := range platforms {
		manifests, err := a.backups.List(p)
		if errors.Is(err, backup.ErrNoBackupsFound) {
			continue
		}
		if err != nil {
			return nil, errors.NewSystemError(errors.Wrapf(err, "listing backups for %s", p), "")
		}
		for _, m := range manifests {
			out = append(out, backupOutput{
				Platform:    m.Platform,
				ID:          m.ID,
				CreatedAt:   m.CreatedAt,
				ProjectDir:  m.ProjectDir,
				FileCount:   len(m.Files),
				ToolVersion: m.ToolVersion,
			})
		}
	}
	return out, nil
}

func printBackups(w io.Writer, backups []backupOutput) error {
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before aibridge overwrites files.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		bold("PLATFORM"), bold("ID"), bold("CREATED"), bold("FILES"), bold("PROJECT"))
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			heading(b.Platform),
			success(b.ID),
			b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			b.FileCount,
			truncate(b.ProjectDir, 48))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

func newBackupPruneCmd(a *app) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune [platform]",
		Short: "Remove old backups",
		Long: `Remove all but the most recent backups of each platform. Without --keep
the retention count from the config is used.`,
		Example: `  aibridge backup prune
  aibridge backup prune codex --keep 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keep") {
				keep = a.backups.RetentionCount()
			}
			if keep < 0 {
				return errors.NewUserError(errors.New("--keep must not be negative"), "")
			}

			platforms := args
			if len(platforms) == 0 {
				var err error
				if platforms, err = a.backups.Platforms(); err != nil {
					return errors.NewSystemError(err, "")
				}
			}

			w := cmd.OutOrStdout()
			total := 0
			for _, p := range platforms {
				removed, err := a.backups.Prune(p, keep)
				if err != nil {
					return errors.NewSystemError(errors.Wrapf(err, "pruning backups for %s", p), "")
				}
				for _, id := range removed {
					if !a.quiet {
						fmt.Fprintf(w, "removed %s/%s\n", p, id)
					}
				}
				total += len(removed)
			}
			if !a.quiet {
				fmt.Fprintf(w, "Removed %d backup(s)\n", total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", backup.DefaultRetentionCount, "number of backups to keep per platform")
	return cmd
}

func newBackupRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <platform> [id]",
		Short: "Restore files from a backup",
		Long: `Copy the files of a backup back to where they were taken from. Without an
ID the most recent backup of the platform is restored.`,
		Example: `  aibridge backup restore codex
  aibridge backup restore codex 20260101T120000Z-1a2b3c4d`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platformName := args[0]

			var id string
			if len(args) == 2 {
				id = args[1]
			} else {
				manifests, err := a.backups.List(platformName)
				if err != nil {
					return errors.NewUserError(errors.Wrapf(err, "%s", platformName), "Run: aibridge backup list")
				}
				id = manifests[0].ID
			}

			m, err := a.backups.Restore(platformName, id)
			switch {
			case errors.Is(err, backup.ErrNoBackupsFound):
				return errors.NewUserError(err, "Run: aibridge backup list")
			case err != nil:
				return errors.NewSystemError(err, "")
			}

			if !a.quiet {
				w := cmd.OutOrStdout()
				for _, f := range m.Files {
					fmt.Fprintf(w, "%s restored %s\n", success("✓"), f.OriginalPath)
				}
			}
			return nil
		},
	}
}
