package cli

import "testing"

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line string
		name string
		arg  string
		rest string
	}{
		{"CREATE file1", "CREATE", "file1", ""},
		{"INSERT file1 Hello World", "INSERT", "file1", "Hello World"},
		{"INSERT file1 Hello  two  spaces", "INSERT", "file1", "Hello  two  spaces"},
		{"INSERT file1 trailing space ", "INSERT", "file1", "trailing space "},
		{"UPDATE f \ttab inside\tkept", "UPDATE", "f", "tab inside\tkept"},
		{"SNAPSHOT f", "SNAPSHOT", "f", ""},
		{"  READ   f  ", "READ", "f", ""},
		{"HELP", "HELP", "", ""},
		{"", "", "", ""},
		{"   ", "", "", ""},
		{"ROLLBACK f 3", "ROLLBACK", "f", "3"},
	}

	for _, tt := range tests {
		name, arg, rest := splitCommand(tt.line)
		if name != tt.name || arg != tt.arg || rest != tt.rest {
			t.Errorf("splitCommand(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.line, name, arg, rest, tt.name, tt.arg, tt.rest)
		}
	}
}
