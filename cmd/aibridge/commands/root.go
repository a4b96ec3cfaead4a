// Package commands implements the CLI commands for aibridge.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/aibridge/internal/backup"
	"github.com/thoreinstein/aibridge/internal/cli/prompt"
	"github.com/thoreinstein/aibridge/internal/config"
	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/logging"
	"github.com/thoreinstein/aibridge/internal/platform"
	"github.com/thoreinstein/aibridge/internal/platform/builtin"
)

// app holds the state shared by every command of one invocation.
type app struct {
	projectDir string
	configFile string
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string

	cfg       *config.Config
	registry  *platform.Registry
	backups   *backup.Manager
	backupDir string

	stdin       io.Reader
	interactive func() bool
	picker      *prompt.Picker
	closers     []io.Closer
}

func newApp() *app {
	return &app{
		projectDir:  ".",
		stdin:       os.Stdin,
		interactive: terminalAttached,
		picker:      prompt.NewPicker(),
	}
}

// NewRootCommand builds the aibridge command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aibridge",
		Short: "Convert AI coding assistant instructions and settings between tools",
		Long: `aibridge converts the instruction documents and settings files of AI
coding assistants from one tool's format to another's.

Supported platforms: Aider, Antigravity, Claude Code, Cline, Codex CLI,
Cursor, OpenCode, Trae, Windsurf and Zed. Instruction sections survive every
conversion; settings convert between Claude Code, Codex CLI and OpenCode.`,
		Example: `  # Show which assistants a project is set up for
  aibridge detect

  # Convert Claude Code instructions and settings to Codex CLI
  aibridge convert claude codex

  # Preview a conversion without writing files
  aibridge convert cursor claude --dry-run

  See Also: aibridge list, aibridge doctor`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupLogging(cmd); err != nil {
				return err
			}
			// version and help work even with a broken config
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.loadConfig()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("aibridge version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.projectDir, "project", "C", ".",
		"project directory to operate on")
	flags.StringVar(&a.configFile, "config", "",
		"config file (default: ./config.yaml or "+config.DefaultFile()+")")
	flags.CountVarP(&a.verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false,
		"suppress non-error output")
	flags.StringVar(&a.logFormat, "log-format", "text",
		"log format: text, json")
	flags.StringVar(&a.logFile, "log-file", "",
		"write logs to file in JSON format")

	cmd.AddCommand(
		newDetectCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newConvertCmd(a),
		newDoctorCmd(a),
		newBackupCmd(a),
		newConfigCmd(a),
		newSettingsCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setupLogging configures the default logger based on verbosity flags.
func (a *app) setupLogging(cmd *cobra.Command) error {
	if a.quiet && a.verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of them")
	}

	var level slog.Level
	if a.quiet {
		level = slog.LevelError
	} else {
		v := a.verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AIBRIDGE_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(a.logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	handlers := []slog.Handler{logging.NewHandler(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})}

	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		a.closers = append(a.closers, f)
		handlers = append(handlers, logging.NewHandler(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	logger := slog.New(logging.NewFanout(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// loadConfig reads the aibridge config and builds the registry of enabled
// platforms.
func (a *app) loadConfig() error {
	viper.Reset()
	config.Init()

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}
	a.cfg = cfg

	dir, err := filepath.Abs(a.projectDir)
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "resolving project directory"), "Check the --project path")
	}
	a.projectDir = dir

	var regs []platform.Registration
	for _, reg := range builtin.Registrations() {
		if cfg.Enabled(reg.Name) {
			regs = append(regs, reg)
		}
	}
	a.registry = platform.NewRegistry(regs)

	opts := []backup.Option{backup.WithRetentionCount(cfg.Backup.Retention)}
	if a.backupDir != "" {
		opts = append(opts, backup.WithBackupDir(a.backupDir))
	}
	a.backups = backup.NewManager(opts...)
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// adapter returns the enabled adapter for name as a user error when it is
// unknown or disabled.
func (a *app) adapter(name string) (platform.Adapter, error) {
	ad, err := a.registry.Adapter(name)
	if err != nil {
		hint := "Run 'aibridge list' to see supported platforms"
		if builtin.IsBuiltin(name) {
			hint = "The platform is disabled in " + configFileLabel()
		}
		return nil, errors.NewUserError(err, hint)
	}
	return ad, nil
}

func configFileLabel() string {
	if f := config.File(); f != "" {
		return f
	}
	return config.DefaultFile()
}

func terminalAttached() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
