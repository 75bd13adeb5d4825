package cmd

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/uistate/internal/model"
)

func sampleTree() model.TreeState {
	return model.NewTreeState(model.Android, []model.ElementNode{
		{Name: "Sign in", Type: "android.widget.TextView", Box: model.BoundingBox{X1: 0, Y1: 0, X2: 400, Y2: 80}},
		{Name: "Email", Type: "android.widget.EditText", Box: model.BoundingBox{X1: 20, Y1: 100, X2: 380, Y2: 160}, Interactive: true},
		{Name: "Continue", Type: "android.widget.Button", Box: model.BoundingBox{X1: 20, Y1: 200, X2: 380, Y2: 260}, Interactive: true},
	}, model.Window{Width: 400, Height: 800}, time.Unix(0, 0))
}

func TestFindElements_ByText(t *testing.T) {
	r := findElements(sampleTree(), "continue", nil, false, 10)
	if r.Total != 1 || len(r.Matches) != 1 {
		t.Fatalf("expected one match, got %+v", r)
	}
	m := r.Matches[0]
	if m.Number != 2 || m.ID != 2 || m.Center != (model.Point{X: 200, Y: 230}) {
		t.Errorf("unexpected match %+v", m)
	}
}

func TestFindElements_NonInteractiveHasNoNumber(t *testing.T) {
	r := findElements(sampleTree(), "sign", nil, false, 10)
	if len(r.Matches) != 1 || r.Matches[0].Number != 0 {
		t.Fatalf("expected unnumbered match, got %+v", r.Matches)
	}
	if !strings.HasPrefix(r.String(), "-  android.widget.TextView 'Sign in'") {
		t.Errorf("unexpected text %q", r.String())
	}
}

func TestFindElements_RegionAndInteractive(t *testing.T) {
	region := model.BoundingBox{X1: 0, Y1: 50, X2: 400, Y2: 150}
	r := findElements(sampleTree(), "", &region, false, 0)
	if r.Total != 2 {
		t.Fatalf("expected 2 elements in region, got %+v", r.Matches)
	}
	r = findElements(sampleTree(), "", &region, true, 0)
	if r.Total != 1 || r.Matches[0].Name != "Email" || r.Matches[0].Number != 1 {
		t.Errorf("expected only Email, got %+v", r.Matches)
	}
}

func TestFindElements_Limit(t *testing.T) {
	r := findElements(sampleTree(), "android", nil, false, 2)
	if r.Total != 3 || len(r.Matches) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(r.Matches), r.Total)
	}
	if !strings.HasSuffix(r.String(), "... 1 more\n") {
		t.Errorf("expected overflow line, got %q", r.String())
	}
}

func TestFindElements_NoMatches(t *testing.T) {
	r := findElements(sampleTree(), "zzz", nil, false, 10)
	if r.Matches == nil || len(r.Matches) != 0 {
		t.Errorf("expected empty, non-nil matches")
	}
	if r.String() != "No matching elements found.\n" {
		t.Errorf("unexpected text %q", r.String())
	}
}

func TestFindCommand(t *testing.T) {
	dump := writeFile(t, "window.xml", []byte(loginDump))
	out, err := execute(t, "find", "--dump", dump, "--window-size", "400x800", "--text", "email", "--format", "json")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var r findResult
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if r.Total != 1 || r.Matches[0].Number != 1 {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestFindCommand_RequiresQuery(t *testing.T) {
	if _, err := execute(t, "find"); err == nil {
		t.Error("expected error without --text or --bbox")
	}
}

func TestFindCommand_BadBBox(t *testing.T) {
	if _, err := execute(t, "find", "--bbox", "1,2,3"); err == nil {
		t.Error("expected error for malformed --bbox")
	}
}
