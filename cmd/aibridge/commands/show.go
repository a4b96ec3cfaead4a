package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/doctor"
	"github.com/thoreinstein/aibridge/internal/errors"
	"github.com/thoreinstein/aibridge/internal/platform"
)

// showOutput is the JSON form of "show".
type showOutput struct {
	Meta         platform.Meta      `json:"meta"`
	Detected     bool               `json:"detected"`
	ConfigPath   string             `json:"configPath,omitempty"`
	Config       map[string]any     `json:"config,omitempty"`
	Instructions *instructionOutput `json:"instructions,omitempty"`
}

type instructionOutput struct {
	Path     string   `json:"path"`
	Title    string   `json:"title,omitempty"`
	Sections []string `json:"sections"`
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <platform>",
		Short: "Show a platform's settings and instructions in the project",
		Long: `Show what a platform has configured in the project: its settings with
secret-looking values masked, and the sections of its instruction file.`,
		Example: `  aibridge show claude
  aibridge show codex --json

  See Also: aibridge detect, aibridge settings get`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.adapter(args[0])
			if err != nil {
				return err
			}

			out, err := a.show(ad)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}

			fmt.Fprintf(w, "%s %s (%s)\n", out.Meta.Icon, heading(out.Meta.DisplayName), out.Meta.Vendor)
			if !out.Detected {
				fmt.Fprintf(w, "  %s\n", muted("not configured in this project"))
			}

			fmt.Fprintf(w, "\n%s\n", bold("Settings"))
			switch {
			case out.Config == nil:
				fmt.Fprintf(w, "  %s\n", muted("(none)"))
			default:
				data, err := ad.StringifyConfig(out.Config)
				if err != nil {
					return errors.NewSystemError(err, "")
				}
				fmt.Fprintf(w, "  %s\n", muted(out.ConfigPath))
				for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}

			fmt.Fprintf(w, "\n%s\n", bold("Instructions"))
			if out.Instructions == nil {
				fmt.Fprintf(w, "  %s\n", muted("(none)"))
				return nil
			}
			fmt.Fprintf(w, "  %s\n", muted(out.Instructions.Path))
			if out.Instructions.Title != "" {
				fmt.Fprintf(w, "  # %s\n", out.Instructions.Title)
			}
			for _, s := range out.Instructions.Sections {
				fmt.Fprintf(w, "  - %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (a *app) show(ad platform.Adapter) (*showOutput, error) {
	out := &showOutput{
		Meta:     ad.Meta(),
		Detected: ad.DetectPlatform(a.projectDir).Detected,
	}

	if cfg := ad.LoadConfig(a.projectDir); cfg != nil {
		out.Config = doctor.MaskConfig(cfg)
		out.ConfigPath = ad.ConfigPaths().Project
	}

	f, err := ad.LoadInstructions(a.projectDir)
	if err != nil {
		return nil, errors.NewSystemError(err, "Check the file permissions")
	}
	if f != nil {
		u := ad.ParseToUnified(f.Content)
		out.Instructions = &instructionOutput{
			Path:     a.rel(f.Path),
			Title:    u.Title,
			Sections: make([]string, 0, u.Len()),
		}
		for _, s := range u.Sections() {
			out.Instructions.Sections = append(out.Instructions.Sections, s.OriginalName)
		}
	}
	return out, nil
}
