package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDiffCommand(t *testing.T) {
	before := writeFile(t, "before.xml", []byte(loginDump))
	after := writeFile(t, "after.xml", []byte(strings.NewReplacer(
		`text="Continue"`, `text="Next"`,
		`bounds="[20,100][380,160]"`, `bounds="[20,120][380,180]"`,
	).Replace(loginDump)))

	out, err := execute(t, "diff", before, after)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.HasPrefix(out, "1 added, 1 removed, 1 moved\n") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	for _, want := range []string{
		"+ android.widget.Button 'Next' (20, 200, 380, 260)\n",
		"- android.widget.Button 'Continue' (20, 200, 380, 260)\n",
		"~ android.widget.EditText 'Email' (20, 100, 380, 160) -> (20, 120, 380, 180)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDiffCommand_NeedsTwoArgs(t *testing.T) {
	if _, err := execute(t, "diff", "only-one.xml"); err == nil {
		t.Error("expected error with one argument")
	}
}

func TestDiffCommand_IdenticalDumps(t *testing.T) {
	dump := writeFile(t, "window.xml", []byte(loginDump))
	out, err := execute(t, "diff", dump, dump)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if out != "0 added, 0 removed, 0 moved\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDiffCommand_SavedSnapshot(t *testing.T) {
	dir := t.TempDir()
	before := writeFile(t, "before.xml", []byte(loginDump))
	snap := filepath.Join(dir, "before.json")
	if _, err := execute(t, "state", "--dump", before, "--save", snap); err != nil {
		t.Fatalf("state --save: %v", err)
	}

	after := writeFile(t, "after.xml", []byte(strings.Replace(loginDump, `text="Email"`, `text="Phone"`, 1)))
	out, err := execute(t, "diff", snap, after)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.HasPrefix(out, "1 added, 1 removed, 0 moved\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
