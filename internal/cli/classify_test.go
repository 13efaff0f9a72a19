package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/scbrown/deliverable/internal/model"
)

func TestClassifyCmdTable(t *testing.T) {
	resetFlags(t)

	out, err := execute(t, "classify", "index.html", "style.css", "notes.txt")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d:\n%s", len(lines), out)
	}
	tests := []struct {
		line int
		want []string
	}{
		{1, []string{"index.html", "main", "web,game,dashboard", "-"}},
		{2, []string{"style.css", "auxiliary", "-", "-"}},
		{3, []string{"notes.txt", "unclassified", "-", "-"}},
	}
	for _, tt := range tests {
		fields := strings.Fields(lines[tt.line])
		if strings.Join(fields, " ") != strings.Join(tt.want, " ") {
			t.Errorf("row %d = %v, want %v", tt.line, fields, tt.want)
		}
	}
}

func TestClassifyCmdJSON(t *testing.T) {
	resetFlags(t)

	out, err := execute(t, "classify", "--json", "latest.html", "main.go")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var results []classifyResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, out)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// "latest.html" contains "test." and is treated as auxiliary.
	if results[0].Class != model.Auxiliary {
		t.Errorf("latest.html class = %s, want auxiliary", results[0].Class)
	}
	if results[1].Class != model.Main || len(results[1].Archetypes) != 1 || results[1].Archetypes[0] != "api" {
		t.Errorf("main.go = %+v", results[1])
	}
	if !strings.Contains(out, `"archetypes": []`) {
		t.Error("archetypes should encode as an empty array, not null")
	}
}

func TestClassifyCmdSuggests(t *testing.T) {
	resetFlags(t)

	out, err := execute(t, "classify", "--json", "Index.html", "indx.html", "style.css")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var results []classifyResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, r := range results[:2] {
		if r.Class != model.Unclassified {
			t.Errorf("%s class = %s, want unclassified", r.Name, r.Class)
		}
		if len(r.Suggestions) == 0 || r.Suggestions[0] != "index.html" {
			t.Errorf("%s suggestions = %v, want index.html first", r.Name, r.Suggestions)
		}
	}
	// Auxiliary names never get hints.
	if len(results[2].Suggestions) != 0 {
		t.Errorf("style.css suggestions = %v", results[2].Suggestions)
	}
}

func TestClassifyCmdRequiresArgs(t *testing.T) {
	resetFlags(t)
	if _, err := execute(t, "classify"); err == nil {
		t.Fatal("expected error with no file names")
	}
}

func TestExtractCmd(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantPath string
		wantName string
		wantPat  string
	}{
		{
			name:     "parameter tag",
			in:       `<parameter name="file_path">src/index.html</parameter>`,
			wantPath: "src/index.html",
			wantName: "index.html",
			wantPat:  "parameter:file_path",
		},
		{
			name:     "python repr",
			in:       `{'target_file': 'app/main.py'}`,
			wantPath: "app/main.py",
			wantName: "main.py",
			wantPat:  "assignment:target_file",
		},
		{
			name:     "wrapped content",
			in:       `{"content": "<parameter name=\"target-file\">C:\\web\\home.html</parameter>"}`,
			wantPath: `C:\web\home.html`,
			wantName: "home.html",
			wantPat:  "parameter:target-file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			pipeStdin(t, tt.in)

			out, err := execute(t, "extract", "--json")
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			var res extractResult
			if err := json.Unmarshal([]byte(out), &res); err != nil {
				t.Fatalf("unmarshal: %v\noutput: %s", err, out)
			}
			if res.FullPath != tt.wantPath || res.FileName != tt.wantName || res.Pattern != tt.wantPat {
				t.Errorf("got %+v, want {%s %s %s}", res, tt.wantPath, tt.wantName, tt.wantPat)
			}
		})
	}
}

func TestExtractCmdText(t *testing.T) {
	resetFlags(t)
	pipeStdin(t, `file_path="web/app.js"`)

	out, err := execute(t, "extract")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"full path:", "web/app.js", "file name:", "app.js", "assignment:file_path"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExtractCmdNoPath(t *testing.T) {
	resetFlags(t)
	pipeStdin(t, "just some prose")

	_, err := execute(t, "extract")
	if err != errNoPath {
		t.Errorf("error = %v, want errNoPath", err)
	}
}

func TestPatternsCmd(t *testing.T) {
	resetFlags(t)

	out, err := execute(t, "patterns")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"ARCHETYPE", "python", "main.py, app.py, run.py, __main__.py", "Auxiliary:", "package.json", "_test.", "parameter:file_path"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPatternsCmdJSON(t *testing.T) {
	resetFlags(t)

	out, err := execute(t, "patterns", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var info patternsInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, out)
	}
	if len(info.Archetypes) != 6 {
		t.Errorf("archetypes = %d, want 6", len(info.Archetypes))
	}
	if len(info.Extractors) != 12 || info.Extractors[0] != "parameter:file_path" || info.Extractors[11] != "json:target-file" {
		t.Errorf("extractors = %v", info.Extractors)
	}
	if len(info.Substrings) != 4 {
		t.Errorf("substrings = %v", info.Substrings)
	}
}
