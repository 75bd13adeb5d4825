package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/state"
)

var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two hierarchy dumps or saved snapshots",
	Long: `Build a snapshot from each dump and report elements that were added, removed
or moved. Elements are matched by type, name, label and id attribute, so shifted
element IDs do not show up as changes. Either argument may also be a snapshot
written by "state --save".

Examples:
  uistate diff --platform android before.xml after.xml
  uistate diff --platform ios before.json current.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// diffResult is the output of the diff command.
type diffResult struct {
	Added   int            `yaml:"added"   json:"added"`
	Removed int            `yaml:"removed" json:"removed"`
	Moved   int            `yaml:"moved"   json:"moved"`
	Changes []model.Change `yaml:"changes" json:"changes"`
}

func newDiffResult(changes []model.Change) diffResult {
	r := diffResult{Changes: changes}
	if r.Changes == nil {
		r.Changes = []model.Change{}
	}
	for _, c := range changes {
		switch c.Type {
		case model.ChangeAdded:
			r.Added++
		case model.ChangeRemoved:
			r.Removed++
		case model.ChangeMoved:
			r.Moved++
		}
	}
	return r
}

func (r diffResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d added, %d removed, %d moved\n", r.Added, r.Removed, r.Moved)
	for _, c := range r.Changes {
		sign := map[model.ChangeType]string{model.ChangeAdded: "+", model.ChangeRemoved: "-", model.ChangeMoved: "~"}[c.Type]
		fmt.Fprintf(&b, "%s %s", sign, c.Element.Type)
		if c.Element.Name != "" {
			fmt.Fprintf(&b, " '%s'", c.Element.Name)
		}
		if c.Prev != nil {
			fmt.Fprintf(&b, " %s ->", *c.Prev)
		}
		fmt.Fprintf(&b, " %s\n", c.Element.Box)
	}
	return b.String()
}

func runDiff(cmd *cobra.Command, args []string) error {
	p, err := selectedPlatform()
	if err != nil {
		return err
	}
	opts, err := driverOptions(p)
	if err != nil {
		return err
	}
	win := cfg.Platforms.For(p).DefaultWindow
	if opts.Window.Known() {
		win = opts.Window
	}

	b, err := state.NewBuilder(p, cfg.Platforms.For(p).MinSize, logger)
	if err != nil {
		return err
	}
	snapshots := make([]model.TreeState, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}
		ts, err := model.DecodeSnapshot(data)
		switch {
		case err == nil:
			snapshots[i] = ts
		case errors.Is(err, model.ErrNotSnapshot):
			snapshots[i] = b.Build(data, win, time.Now())
		default:
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return printResult(cmd, newDiffResult(model.DiffStates(snapshots[0], snapshots[1])))
}
