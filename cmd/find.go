package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
	"github.com/mj1618/uistate/internal/state"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the current UI state for elements",
	Long: `Search elements by text (case-insensitive substring on name, label and type)
and/or by region. Interactive matches carry the number an agent would see in the
state output and on the annotated screenshot.`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("text", "", "Text to search for")
	findCmd.Flags().String("bbox", "", "Only elements overlapping this region (x,y,w,h)")
	findCmd.Flags().Bool("interactive", false, "Only interactive elements")
	findCmd.Flags().Int("limit", 10, "Max matches to return (0 = unlimited)")
}

// findMatch is one matching element with its overlay number, 0 if not interactive.
type findMatch struct {
	Number int               `yaml:"n,omitempty"     json:"n,omitempty"`
	ID     int               `yaml:"id"              json:"id"`
	Type   string            `yaml:"type"            json:"type"`
	Name   string            `yaml:"name,omitempty"  json:"name,omitempty"`
	Label  string            `yaml:"label,omitempty" json:"label,omitempty"`
	Box    model.BoundingBox `yaml:"box"             json:"box"`
	Center model.Point       `yaml:"center"          json:"center"`
}

// findResult is the top-level output of the find command.
type findResult struct {
	Text    string      `yaml:"text,omitempty" json:"text,omitempty"`
	Matches []findMatch `yaml:"matches"        json:"matches"`
	Total   int         `yaml:"total"          json:"total"`
}

func (r findResult) String() string {
	if len(r.Matches) == 0 {
		return "No matching elements found.\n"
	}
	var b strings.Builder
	for _, m := range r.Matches {
		if m.Number > 0 {
			fmt.Fprintf(&b, "%d. ", m.Number)
		} else {
			b.WriteString("-  ")
		}
		fmt.Fprintf(&b, "%s", m.Type)
		if m.Name != "" {
			fmt.Fprintf(&b, " '%s'", m.Name)
		}
		fmt.Fprintf(&b, " at %s center (%d, %d)\n", m.Box, m.Center.X, m.Center.Y)
	}
	if r.Total > len(r.Matches) {
		fmt.Fprintf(&b, "... %d more\n", r.Total-len(r.Matches))
	}
	return b.String()
}

func runFind(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	bbox, _ := cmd.Flags().GetString("bbox")
	onlyInteractive, _ := cmd.Flags().GetBool("interactive")
	limit, _ := cmd.Flags().GetInt("limit")

	if text == "" && bbox == "" {
		return fmt.Errorf("--text or --bbox is required")
	}
	var region *model.BoundingBox
	if bbox != "" {
		r, err := platform.ParseBBox(bbox)
		if err != nil {
			return err
		}
		region = &r
	}

	d, cleanup, err := openDriver()
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := state.NewEngine(engineOptions(d.Platform(), 0), logger)
	if err != nil {
		return err
	}
	st, err := engine.GetState(cmd.Context(), d, false)
	if err != nil {
		return err
	}
	return printResult(cmd, findElements(st.Tree, text, region, onlyInteractive, limit))
}

// findElements filters a snapshot and attaches overlay numbers.
func findElements(ts model.TreeState, text string, region *model.BoundingBox, onlyInteractive bool, limit int) findResult {
	elements := ts.Elements
	if onlyInteractive {
		elements = ts.InteractiveElements
	}
	elements = model.FilterByText(elements, text)
	if region != nil {
		elements = model.FilterByRegion(elements, *region)
	}

	result := findResult{Text: text, Matches: []findMatch{}, Total: len(elements)}
	for _, el := range elements {
		if limit > 0 && len(result.Matches) >= limit {
			break
		}
		result.Matches = append(result.Matches, findMatch{
			Number: ts.InteractiveNumber(el.ID),
			ID:     el.ID,
			Type:   el.Type,
			Name:   el.Name,
			Label:  el.Label,
			Box:    el.Box,
			Center: el.Center,
		})
	}
	return result
}
