package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"treevc/internal/colors"
	"treevc/internal/config"
	"treevc/internal/tracker"
	"treevc/internal/verr"
	"treevc/internal/vtree"
)

const helpText = `Available commands:
  CREATE <filename>
  READ <filename>
  INSERT <filename> <content...>
  UPDATE <filename> <content...>
  SNAPSHOT <filename> [message...]
  ROLLBACK <filename> [version_id]
  HISTORY <filename>
  RECENT_FILES [k]
  BIGGEST_TREES [k]
  HELP
  EXIT`

// Shell is the interactive command loop. Errors from individual
// commands are reported and the loop continues; only EXIT or end of
// input terminates it.
type Shell struct {
	tracker     *tracker.Tracker
	prompt      string
	interactive bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewShell creates a shell processing commands from in and writing
// results to out and errors to errOut.
func NewShell(cfg *config.Config, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		tracker: tracker.New(tracker.Options{Author: cfg.User.Name}),
		prompt:  cfg.Shell.Prompt,
		in:      in,
		out:     out,
		errOut:  errOut,
	}
}

// SetInteractive enables the prompt before each command line.
func (s *Shell) SetInteractive(interactive bool) {
	s.interactive = interactive
}

// Run processes command lines until EXIT or end of input.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if s.interactive {
			fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if !s.dispatch(scanner.Text()) {
			return nil
		}
	}
}

// dispatch runs one command line and reports whether the loop should
// continue.
func (s *Shell) dispatch(line string) bool {
	name, arg, rest := splitCommand(line)
	if name == "" {
		return true
	}

	switch name {
	case "HELP":
		fmt.Fprintln(s.out, helpText)
		fmt.Fprintln(s.out)
		return true
	case "EXIT":
		fmt.Fprintln(s.out, "Exiting...")
		return false
	}

	if err := s.runCommand(name, arg, rest); err != nil {
		fmt.Fprintln(s.errOut, colors.ErrorText("Error: "+errMessage(err)))
		fmt.Fprintln(s.out)
	}
	return true
}

func (s *Shell) runCommand(name, arg, rest string) error {
	switch name {
	case "CREATE":
		return s.create(arg)
	case "READ":
		return s.read(arg)
	case "INSERT":
		return s.insert(arg, rest)
	case "UPDATE":
		return s.update(arg, rest)
	case "SNAPSHOT":
		return s.snapshot(arg, rest)
	case "ROLLBACK":
		return s.rollback(arg, rest)
	case "HISTORY":
		return s.history(arg)
	case "RECENT_FILES":
		return s.recentFiles(arg)
	case "BIGGEST_TREES":
		return s.biggestTrees(arg)
	default:
		return verr.Validationf("unknown command: %s", name)
	}
}

func (s *Shell) create(name string) error {
	if name == "" {
		return verr.Validationf("CREATE requires a file name")
	}
	if err := s.tracker.Create(name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s File created: %s\n\n",
		colors.Header("[CREATE]"), colors.FileName(name))
	return nil
}

func (s *Shell) read(name string) error {
	if name == "" {
		return verr.Validationf("READ requires a file name")
	}
	content, err := s.tracker.Read(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s Content of file '%s':\n%s\n\n",
		colors.Header("[READ]"), colors.FileName(name), content)
	return nil
}

func (s *Shell) insert(name, content string) error {
	if name == "" {
		return verr.Validationf("INSERT requires a file name")
	}
	current, err := s.tracker.Insert(name, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s Content inserted into file '%s':\n%s\n",
		colors.Header("[INSERT]"), colors.FileName(name), content)
	fmt.Fprintf(s.out, "Current content:\n%s\n\n", current)
	return nil
}

func (s *Shell) update(name, content string) error {
	if name == "" {
		return verr.Validationf("UPDATE requires a file name")
	}
	current, err := s.tracker.Update(name, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s Content updated in file '%s':\n%s\n",
		colors.Header("[UPDATE]"), colors.FileName(name), content)
	fmt.Fprintf(s.out, "Current content:\n%s\n\n", current)
	return nil
}

func (s *Shell) snapshot(name, message string) error {
	if name == "" {
		return verr.Validationf("SNAPSHOT requires a file name")
	}
	if err := s.tracker.Snapshot(name, message); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s Snapshot created for file '%s'.\n",
		colors.Header("[SNAPSHOT]"), colors.FileName(name))
	if message != "" {
		fmt.Fprintf(s.out, "Message: %s\n", message)
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) rollback(name, rest string) error {
	if name == "" {
		return verr.Validationf("ROLLBACK requires a file name")
	}

	args := strings.Fields(rest)
	switch len(args) {
	case 0:
		content, err := s.tracker.Rollback(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s File '%s' rolled back to previous version.\n",
			colors.Header("[ROLLBACK]"), colors.FileName(name))
		fmt.Fprintf(s.out, "Current content:\n%s\n\n", content)
		return nil
	case 1:
		id, err := parseCount(args[0], "ROLLBACK requires a non-negative integer version id")
		if err != nil {
			return err
		}
		content, err := s.tracker.Checkout(name, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s File '%s' rolled back to version %d.\n",
			colors.Header("[ROLLBACK]"), colors.FileName(name), id)
		fmt.Fprintf(s.out, "Current content:\n%s\n\n", content)
		return nil
	default:
		return verr.Validationf("ROLLBACK takes at most one version id")
	}
}

func (s *Shell) history(name string) error {
	if name == "" {
		return verr.Validationf("HISTORY requires a file name")
	}
	nodes, err := s.tracker.History(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s Snapshots for file '%s':\n",
		colors.Header("[HISTORY]"), colors.FileName(name))
	if len(nodes) == 0 {
		fmt.Fprintln(s.out, "(no snapshots yet)")
	}
	for _, n := range nodes {
		fmt.Fprintln(s.out, formatSnapshot(n))
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) recentFiles(arg string) error {
	k, err := s.resolveCount(arg, "RECENT_FILES requires a non-negative integer argument")
	if err != nil {
		return err
	}
	files, err := s.tracker.RecentFiles(k)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s Showing %d file(s):\n", colors.Header("[RECENT_FILES]"), k)
	for _, f := range files {
		fmt.Fprintf(s.out, "%s -> %s\n",
			colors.FileName(f.Name), colors.Dim(f.Modified.Format(time.ANSIC)))
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) biggestTrees(arg string) error {
	k, err := s.resolveCount(arg, "BIGGEST_TREES requires a non-negative integer argument")
	if err != nil {
		return err
	}
	trees, err := s.tracker.BiggestTrees(k)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s Showing %d file(s) by version count:\n",
		colors.Header("[BIGGEST_TREES]"), k)
	for _, tr := range trees {
		fmt.Fprintf(s.out, "%d -> %s\n", tr.Versions, colors.FileName(tr.Name))
	}
	fmt.Fprintln(s.out)
	return nil
}

// resolveCount parses an optional top-k argument; an omitted argument
// means all tracked files.
func (s *Shell) resolveCount(arg, msg string) (int, error) {
	if arg == "" {
		return s.tracker.Len(), nil
	}
	return parseCount(arg, msg)
}

func parseCount(arg, msg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, verr.Validationf("%s, got %q", msg, arg)
	}
	return n, nil
}

func formatSnapshot(n *vtree.Node) string {
	line := fmt.Sprintf("Version %d", n.ID)
	if h, ok := n.Blob(); ok {
		line += " " + colors.Hash("("+h.Short()+")")
	}
	line += fmt.Sprintf("\n | Created: %s | Snapshot: %s",
		colors.Dim(n.CreatedAt.Format(time.ANSIC)),
		colors.Dim(n.SnapshottedAt.Format(time.ANSIC)))
	if n.Author != "" {
		line += " | Author: " + n.Author
	}
	line += " | Message: " + n.Message
	return line
}

// errMessage strips the machine-readable kind prefix that verr wraps
// in, leaving the human-readable part for display.
func errMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{
		verr.ErrValidation, verr.ErrNotFound, verr.ErrConflict, verr.ErrState, verr.ErrRange,
	} {
		prefix := kind.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return msg[len(prefix):]
		}
	}
	return msg
}
