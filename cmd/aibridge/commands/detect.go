package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/errors"
)

// detectOutput is one detected platform in JSON output.
type detectOutput struct {
	Platform     string `json:"platform"`
	DisplayName  string `json:"displayName"`
	DetectedBy   string `json:"detectedBy"`
	Instructions string `json:"instructions,omitempty"`
}

func newDetectCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "List the assistants configured in the project",
		Long: `Detect which AI coding assistants are configured in the project.

A platform counts as configured when its settings file, its settings
directory or one of its instruction files exists. Several platforms may
share a file such as CLAUDE.md.`,
		Example: `  # Detect in the current directory
  aibridge detect

  # Detect in another project, as JSON
  aibridge detect -C ~/src/app --json

  See Also: aibridge show, aibridge convert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			found, err := a.detect()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, found)
			}

			if len(found) == 0 {
				fmt.Fprintf(w, "No AI assistant configuration found in %s\n", a.projectDir)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", bold("PLATFORM"), bold("DETECTED BY"), bold("INSTRUCTIONS"))
			for _, d := range found {
				instr := d.Instructions
				if instr == "" {
					instr = muted("-")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", success(d.Platform), d.DetectedBy, instr)
			}
			return errors.Wrap(tw.Flush(), "writing output")
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

// detect returns the detected platforms with paths relative to the project.
func (a *app) detect() ([]detectOutput, error) {
	found := make([]detectOutput, 0)
	for _, d := range a.registry.DetectPlatforms(a.projectDir) {
		out := detectOutput{
			Platform:    d.Platform,
			DisplayName: d.Adapter.Meta().DisplayName,
			DetectedBy:  a.rel(d.ConfigPath),
		}
		f, err := d.Adapter.LoadInstructions(a.projectDir)
		if err != nil {
			return nil, errors.NewSystemError(err, "Check the file permissions")
		}
		if f != nil {
			out.Instructions = a.rel(f.Path)
		}
		found = append(found, out)
	}
	return found, nil
}

// rel returns p relative to the project directory when it lies inside it.
func (a *app) rel(p string) string {
	r, err := filepath.Rel(a.projectDir, p)
	if err != nil {
		return p
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return p
	}
	return r
}
