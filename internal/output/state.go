package output

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mj1618/uistate/internal/model"
)

// MaxNameRunes caps element names in the text form.
const MaxNameRunes = 50

// FormatState renders the numbered text form of a snapshot. Numbers in the
// interactive list match the labels drawn on the annotated screenshot.
func FormatState(ts model.TreeState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s UI Tree State:\n", ts.Platform.Title())
	fmt.Fprintf(&b, "Window Size: (%d, %d)\n", ts.Window.Width, ts.Window.Height)
	fmt.Fprintf(&b, "Orientation: %s\n", ts.Window.Orientation)
	fmt.Fprintf(&b, "Total Elements: %d\n", len(ts.Elements))
	fmt.Fprintf(&b, "Interactive Elements: %d\n\n", len(ts.InteractiveElements))

	b.WriteString("All Elements with Text:\n")
	n := 0
	for _, el := range ts.Elements {
		if el.Name == "" && el.Label == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s", el.ID+1, el.Type)
		if el.Name != "" {
			fmt.Fprintf(&b, " name='%s'", truncate(el.Name))
		}
		if el.Label != "" && el.Label != el.Name {
			fmt.Fprintf(&b, " label='%s'", truncate(el.Label))
		}
		fmt.Fprintf(&b, " at %s", el.Box)
		if el.Interactive {
			b.WriteString(" (interactive)")
		}
		b.WriteByte('\n')
	}
	if n == 0 {
		b.WriteString("No elements with text found.\n")
	}
	b.WriteString("\nInteractive Elements:\n")

	if len(ts.InteractiveElements) == 0 {
		b.WriteString("No interactive elements found.\n")
		return b.String()
	}
	for i, el := range ts.InteractiveElements {
		fmt.Fprintf(&b, "%d. %s", i+1, el.Type)
		if el.Name != "" {
			fmt.Fprintf(&b, " '%s'", truncate(el.Name))
		}
		if el.Label != "" {
			fmt.Fprintf(&b, " [%s]", truncate(el.Label))
		}
		fmt.Fprintf(&b, " at %s\n", el.Box)
	}
	return b.String()
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= MaxNameRunes {
		return s
	}
	r := []rune(s)
	return string(r[:MaxNameRunes]) + "..."
}

// NumberedElement is an interactive element with its overlay number.
type NumberedElement struct {
	Number            int `yaml:"n" json:"n"`
	model.ElementNode `yaml:",inline"`
}

// StateResult is the structured form of a snapshot for YAML and JSON output.
type StateResult struct {
	Platform    model.Platform      `yaml:"platform"          json:"platform"`
	Window      model.Window        `yaml:"window"            json:"window"`
	TS          int64               `yaml:"ts"                json:"ts"`
	Elements    []model.ElementNode `yaml:"elements"          json:"elements"`
	Interactive []NumberedElement   `yaml:"interactive"       json:"interactive"`
	Image       string              `yaml:"image,omitempty"   json:"image,omitempty"` // path of the written screenshot

	state model.TreeState
}

// NewStateResult converts a snapshot for structured output.
func NewStateResult(ts model.TreeState) StateResult {
	inter := make([]NumberedElement, len(ts.InteractiveElements))
	for i, el := range ts.InteractiveElements {
		inter[i] = NumberedElement{Number: i + 1, ElementNode: el}
	}
	elements := ts.Elements
	if elements == nil {
		elements = []model.ElementNode{}
	}
	return StateResult{
		Platform:    ts.Platform,
		Window:      ts.Window,
		TS:          ts.Timestamp.UnixMilli(),
		Elements:    elements,
		Interactive: inter,
		state:       ts,
	}
}
