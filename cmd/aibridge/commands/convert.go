package commands

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/backup"
	"github.com/thoreinstein/aibridge/internal/cli/prompt"
	"github.com/thoreinstein/aibridge/internal/convert"
	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/logging"
	"github.com/thoreinstein/aibridge/internal/paths"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// Kinds of converted files.
const (
	kindInstructions = "instructions"
	kindSettings     = "settings"
)

type convertOptions struct {
	dryRun           bool
	backup           bool
	instructionsOnly bool
	configOnly       bool
}

// convertResult is one file a conversion writes, or would write.
type convertResult struct {
	Target  string
	Kind    string
	Path    string
	Content string

	// Skipped explains why nothing is written. Empty for planned writes.
	Skipped string

	write func() (string, error)
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [from] [to]",
		Short: "Convert instructions and settings from one assistant to another",
		Long: `Convert the project's instruction document, and settings where a converter
exists, from one assistant's format to another's.

Without "from" the detected platform is used; when several are detected you
are asked to pick one. Without "to" a fuzzy finder lists the targets on a
terminal; otherwise default_targets from the config file is used.

Settings convert between claude, codex and opencode. Files about to be
overwritten are backed up first unless --backup=false is given.`,
		Example: `  # Convert Claude Code to Codex CLI
  aibridge convert claude codex

  # Preview converting Cursor rules to Claude Code
  aibridge convert cursor claude --dry-run

  # Convert only the instruction document
  aibridge convert claude windsurf --instructions-only

  See Also: aibridge detect, aibridge backup list`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("backup") {
				opts.backup = a.cfg.Backup.Enabled
			}

			w := cmd.OutOrStdout()
			from, err := a.resolveSource(w, args)
			if err != nil {
				return err
			}
			targets, err := a.resolveTargets(from, args)
			if err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Debug("converting",
				"from", from, "to", targets, "project", a.projectDir, "dry_run", opts.dryRun)

			results, session, err := a.convert(from, targets, opts)
			if err != nil {
				return err
			}
			a.printResults(w, results, session, opts)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the converted files instead of writing them")
	flags.BoolVar(&opts.backup, "backup", true, "back up files before overwriting them (default from config)")
	flags.BoolVar(&opts.instructionsOnly, "instructions-only", false, "convert only the instruction document")
	flags.BoolVar(&opts.configOnly, "config-only", false, "convert only the settings file")
	cmd.MarkFlagsMutuallyExclusive("instructions-only", "config-only")
	return cmd
}

// resolveSource returns the platform to convert from.
func (a *app) resolveSource(w io.Writer, args []string) (string, error) {
	if len(args) > 0 {
		if _, err := a.adapter(args[0]); err != nil {
			return "", err
		}
		return args[0], nil
	}

	const hint = "Pass the source platform: aibridge convert <from> <to>"

	found := a.registry.DetectPlatforms(a.projectDir)
	switch len(found) {
	case 0:
		return "", errors.NewUserError(errors.Wrapf(errors.ErrNothingDetected, "in %s", a.projectDir), hint)
	case 1:
		return found[0].Platform, nil
	}

	opts := make([]prompt.Option, len(found))
	names := make([]string, len(found))
	for i, d := range found {
		opts[i] = prompt.Option{Name: d.Platform, Detail: a.rel(d.ConfigPath)}
		names[i] = d.Platform
	}

	if !a.interactive() {
		return "", errors.NewUserError(
			errors.Newf("several platforms detected: %s", strings.Join(names, ", ")), hint)
	}

	choice, err := prompt.NewSelectorWithIO(a.stdin, w).Select("Several platforms detected, convert from", opts)
	if err != nil {
		return "", errors.NewUserError(err, hint)
	}
	return choice.Name, nil
}

// resolveTargets returns the platforms to convert to.
func (a *app) resolveTargets(from string, args []string) ([]string, error) {
	if len(args) == 2 {
		to := args[1]
		if to == from {
			return nil, errors.NewUserError(
				errors.Newf("source and target are both %s", from), "Pick two different platforms")
		}
		if _, err := a.adapter(to); err != nil {
			return nil, err
		}
		return []string{to}, nil
	}

	if a.interactive() {
		var opts []prompt.Option
		for _, m := range a.registry.ListWithMeta() {
			if m.Name != from {
				opts = append(opts, prompt.Option{Name: m.Name, Detail: m.DisplayName})
			}
		}
		choice, err := a.picker.Pick(opts, a.previewTarget)
		if err != nil {
			return nil, errors.NewUserError(err, "Pass the target platform: aibridge convert <from> <to>")
		}
		return []string{choice.Name}, nil
	}

	targets := slices.DeleteFunc(slices.Clone(a.cfg.DefaultTargets), func(name string) bool {
		return name == from || !a.registry.Has(name)
	})
	if len(targets) == 0 {
		return nil, errors.NewUserError(errors.New("no target platform given"),
			"Pass a target or set default_targets in "+configFileLabel())
	}
	return targets, nil
}

func (a *app) previewTarget(o prompt.Option) string {
	m, ok := a.registry.Meta(o.Name)
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n%s\n\n", m.Icon, m.DisplayName, m.Vendor)
	fmt.Fprintf(&b, "Instructions: %s\n", strings.Join(m.Instruction.Files, ", "))
	if m.Config.Paths.Project != "" {
		fmt.Fprintf(&b, "Settings:     %s (%s)\n", m.Config.Paths.Project, m.Config.Format)
	}
	if convert.Supports(m.Name) {
		b.WriteString("\nSettings are converted too.\n")
	}
	return b.String()
}

// convert plans every target and, unless this is a dry run, backs up and
// writes the files.
func (a *app) convert(from string, targets []string, opts convertOptions) ([]convertResult, *backup.Session, error) {
	src, err := a.adapter(from)
	if err != nil {
		return nil, nil, err
	}

	var instr *platform.InstructionFile
	if !opts.configOnly {
		instr, err = src.LoadInstructions(a.projectDir)
		if err != nil {
			return nil, nil, errors.NewSystemError(err, "Check the file permissions")
		}
	}

	var srcCfg map[string]any
	if !opts.instructionsOnly && convert.Supports(from) {
		srcCfg = src.LoadConfig(a.projectDir)
	}

	if instr == nil && srcCfg == nil {
		return nil, nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "nothing to convert: no %s instructions or settings", from),
			"Run 'aibridge show "+from+"' to see what is configured")
	}

	var session *backup.Session
	if opts.backup && !opts.dryRun {
		session = backup.NewSession(a.backups, a.projectDir)
	}

	var results []convertResult
	for _, to := range targets {
		dst, err := a.adapter(to)
		if err != nil {
			return nil, nil, err
		}

		planned, err := a.plan(src, dst, instr, srcCfg)
		if err != nil {
			return nil, nil, err
		}
		if !opts.dryRun {
			if err := a.write(session, to, planned); err != nil {
				return nil, nil, err
			}
		}
		results = append(results, planned...)
	}

	if session != nil {
		for name := range session.Taken() {
			if _, err := a.backups.Trim(name); err != nil {
				slog.Default().Warn("failed to prune old backups", "platform", name, "error", err)
			}
		}
	}
	return results, session, nil
}

// plan renders the files dst receives.
func (a *app) plan(src, dst platform.Adapter, instr *platform.InstructionFile, srcCfg map[string]any) ([]convertResult, error) {
	from, to := src.Meta().Name, dst.Meta().Name
	var out []convertResult

	if instr != nil && len(dst.InstructionFiles()) > 0 {
		p, err := paths.ProjectPath(a.projectDir, dst.InstructionFiles()[0])
		if err != nil {
			return nil, errors.NewSystemError(err, "")
		}
		r := convertResult{Target: to, Kind: kindInstructions, Path: p}
		if p == instr.Path {
			r.Skipped = fmt.Sprintf("%s already reads %s", to, a.rel(p))
		} else {
			r.Content = platform.ConvertInstructionTo(src, instr.Content, dst)
			content := r.Content
			r.write = func() (string, error) {
				return dst.SaveInstructions(a.projectDir, content, "")
			}
		}
		out = append(out, r)
	}

	if srcCfg != nil {
		switch {
		case !convert.Supports(to):
			out = append(out, convertResult{Target: to, Kind: kindSettings,
				Skipped: fmt.Sprintf("no settings converter for %s", to)})
		default:
			cfg, err := convert.Convert(srcCfg, from, to)
			if err != nil {
				return nil, errors.NewSystemError(err, "")
			}
			data, err := dst.StringifyConfig(cfg)
			if err != nil {
				return nil, errors.NewSystemError(err, "")
			}
			p, err := paths.ProjectPath(a.projectDir, dst.ConfigPaths().Project)
			if err != nil {
				return nil, errors.NewSystemError(err, "")
			}
			out = append(out, convertResult{
				Target:  to,
				Kind:    kindSettings,
				Path:    p,
				Content: string(data),
				write: func() (string, error) {
					return dst.SaveConfig(a.projectDir, cfg)
				},
			})
		}
	}
	return out, nil
}

// write backs up the files of one target, then writes them.
func (a *app) write(session *backup.Session, target string, planned []convertResult) error {
	var files []string
	for _, r := range planned {
		if r.write != nil {
			files = append(files, r.Path)
		}
	}
	if len(files) == 0 {
		return nil
	}

	if session != nil {
		if _, err := session.Ensure(target, files); err != nil {
			return errors.NewSystemError(err, "Retry with --backup=false to skip the backup")
		}
	}

	for _, r := range planned {
		if r.write == nil {
			continue
		}
		if _, err := r.write(); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "writing %s %s", r.Target, r.Kind), "Check the file permissions")
		}
	}
	return nil
}

func (a *app) printResults(w io.Writer, results []convertResult, session *backup.Session, opts convertOptions) {
	if a.quiet {
		return
	}

	for _, r := range results {
		label := r.Target + " " + r.Kind
		switch {
		case r.Skipped != "":
			fmt.Fprintf(w, "%s %s: %s\n", muted("-"), label, muted(r.Skipped))
		case opts.dryRun:
			fmt.Fprintf(w, "%s\n", heading("==> "+a.rel(r.Path)+" ("+label+")"))
			fmt.Fprintln(w, strings.TrimRight(r.Content, "\n"))
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "%s %s -> %s\n", success("✓"), label, a.rel(r.Path))
		}
	}

	if session == nil {
		return
	}
	taken := session.Taken()
	for _, name := range slices.Sorted(maps.Keys(taken)) {
		m := taken[name]
		fmt.Fprintf(w, "%s backed up %d file(s) for %s as %s\n", muted("i"), len(m.Files), name, m.ID)
	}
}
