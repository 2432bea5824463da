package cli

import (
	"bytes"
	"strings"
	"testing"

	"treevc/internal/colors"
	"treevc/internal/config"
)

// runScript feeds a command script to a fresh shell and returns what
// it wrote to stdout and stderr.
func runScript(t *testing.T, script string) (stdout, stderr string) {
	t.Helper()
	colors.SetColorEnabled(false)

	var out, errOut bytes.Buffer
	cfg := config.Default()
	cfg.User.Name = "tester"
	shell := NewShell(cfg, strings.NewReader(script), &out, &errOut)
	if err := shell.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String(), errOut.String()
}

func TestCreateReadInsert(t *testing.T) {
	stdout, stderr := runScript(t, `CREATE file1
INSERT file1 Hello World
READ file1
EXIT
`)
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	for _, want := range []string{
		"[CREATE] File created: file1",
		"[INSERT] Content inserted into file 'file1':\nHello World",
		"Current content:\nHello World",
		"[READ] Content of file 'file1':\nHello World",
		"Exiting...",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestContentKeepsInteriorWhitespace(t *testing.T) {
	stdout, stderr := runScript(t, "CREATE f\nINSERT f two  spaces\tand tab\nREAD f\n")
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	if !strings.Contains(stdout, "two  spaces\tand tab") {
		t.Errorf("interior whitespace not preserved:\n%s", stdout)
	}
}

func TestSnapshotRollbackHistory(t *testing.T) {
	stdout, stderr := runScript(t, `CREATE f
INSERT f X
SNAPSHOT f m1
INSERT f Y
ROLLBACK f
HISTORY f
`)
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	for _, want := range []string{
		"[SNAPSHOT] Snapshot created for file 'f'.",
		"Message: m1",
		"rolled back to previous version",
		"Current content:\nX",
		"[HISTORY] Snapshots for file 'f':",
		"Message: m1",
		"Author: tester",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRollbackToVersionID(t *testing.T) {
	stdout, stderr := runScript(t, `CREATE f
INSERT f one
SNAPSHOT f first
UPDATE f two
ROLLBACK f 1
`)
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	if !strings.Contains(stdout, "rolled back to version 1") {
		t.Errorf("missing checkout confirmation:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Current content:\none") {
		t.Errorf("checkout should land on version 1 content:\n%s", stdout)
	}
}

func TestTopKQueries(t *testing.T) {
	stdout, stderr := runScript(t, `CREATE a
CREATE b
CREATE c
INSERT b grow
RECENT_FILES 2
BIGGEST_TREES
`)
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	if !strings.Contains(stdout, "[RECENT_FILES] Showing 2 file(s):") {
		t.Errorf("missing recent files header:\n%s", stdout)
	}
	// "b" was mutated last and must lead the recency listing.
	idx := strings.Index(stdout, "[RECENT_FILES]")
	if !strings.HasPrefix(stdout[idx:][strings.Index(stdout[idx:], "\n")+1:], "b -> ") {
		t.Errorf("most recent file should be b:\n%s", stdout)
	}
	// Omitted k lists all three files.
	if !strings.Contains(stdout, "[BIGGEST_TREES] Showing 3 file(s) by version count:") {
		t.Errorf("missing biggest trees header:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2 -> b") {
		t.Errorf("b should have 2 versions:\n%s", stdout)
	}
}

func TestErrorsReportedAndLoopContinues(t *testing.T) {
	stdout, stderr := runScript(t, `READ missing
CREATE f
CREATE f
SNAPSHOT f
SNAPSHOT f again
ROLLBACK f 99
ROLLBACK f
RECENT_FILES 5
RECENT_FILES x
FROBNICATE f
READ f
`)
	for _, want := range []string{
		`Error: file "missing" not found`,
		`Error: file "f" already exists`,
		"Error: version 0 is already a snapshot",
		"Error: version id 99 not in [0, 1)",
		"Error: no parent version to roll back to",
		"Error: requested 5 entries but only 1 file(s) are indexed",
		"Error: RECENT_FILES requires a non-negative integer argument",
		"Error: unknown command: FROBNICATE",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	// The loop must survive every error above and run the final READ.
	if !strings.Contains(stdout, "[READ] Content of file 'f':") {
		t.Errorf("shell did not continue after errors:\n%s", stdout)
	}
}

func TestEmptyLinesAndEOF(t *testing.T) {
	stdout, stderr := runScript(t, "\n\nCREATE f\n\n")
	if stderr != "" {
		t.Errorf("unexpected errors: %q", stderr)
	}
	if !strings.Contains(stdout, "[CREATE] File created: f") {
		t.Errorf("command after blank lines not run:\n%s", stdout)
	}
	// EOF without EXIT terminates cleanly; runScript already asserts a
	// nil error from Run.
}
