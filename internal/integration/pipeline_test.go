//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
)

type report struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Events   int    `json:"events"`
	Decision struct {
		Index    *int   `json:"index"`
		FileName string `json:"file_name"`
	} `json:"decision"`
	Verdicts []struct {
		Index  int    `json:"index"`
		Class  string `json:"class"`
		Reason string `json:"reason"`
	} `json:"verdicts"`
}

func scanJSON(t *testing.T, e *dlvrEnv, stdin []byte, args ...string) report {
	t.Helper()
	stdout, _ := e.mustRun(stdin, append([]string{"scan", "--json"}, args...)...)
	var r report
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("parse scan JSON: %v\n%s", err, stdout)
	}
	return r
}

// TestPipelineScenarios runs each transcript shape through the binary.
func TestPipelineScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		source    string
		input     string
		wantIndex int // -1 for none
		wantFile  string
	}{
		{
			name:      "auxiliary then main",
			source:    "events",
			input:     `[{"index":0,"tool_name":"create_file","content":"<parameter name=\"file_path\">style.css</parameter>"},{"index":1,"tool_name":"create_file","content":"<parameter name=\"file_path\">index.html</parameter>"}]`,
			wantIndex: 1,
			wantFile:  "index.html",
		},
		{
			name:      "nested json content",
			source:    "events",
			input:     `{"index":0,"tool_name":"full_file_rewrite","content":"{\"content\":\"target_file: 'src/app.py'\"}"}`,
			wantIndex: 0,
			wantFile:  "app.py",
		},
		{
			name:      "no mutation tools",
			source:    "events",
			input:     `[{"tool_name":"read_file","content":{"file_path":"index.html"}}]`,
			wantIndex: -1,
		},
		{
			name:      "invoke blocks",
			source:    "invoke-xml",
			input:     "<invoke name=\"edit_file\"><parameter name=\"file_path\">README.md</parameter></invoke>\n<invoke name=\"edit_file\"><parameter name=\"file_path\">server.ts</parameter></invoke>",
			wantIndex: 1,
			wantFile:  "server.ts",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			r := scanJSON(t, e, []byte(tt.input), "--source", tt.source)
			if tt.wantIndex < 0 {
				if r.Decision.Index != nil {
					t.Errorf("decision = %d, want none", *r.Decision.Index)
				}
				return
			}
			if r.Decision.Index == nil || *r.Decision.Index != tt.wantIndex || r.Decision.FileName != tt.wantFile {
				t.Errorf("decision = %+v, want %d %s", r.Decision, tt.wantIndex, tt.wantFile)
			}
		})
	}
}

// TestPipelineExplainStopsAtMain verifies verdicts run up to the main file.
func TestPipelineExplainStopsAtMain(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	r := scanJSON(t, e, nil, "--explain", "--source", "claude-code", fixture("web_session.jsonl"))
	if len(r.Verdicts) != 2 {
		t.Fatalf("got %d verdicts, want 2", len(r.Verdicts))
	}
	if r.Verdicts[0].Class != "auxiliary" || r.Verdicts[1].Class != "main" {
		t.Errorf("verdicts = %+v", r.Verdicts)
	}
}

// TestPipelineStream feeds events to stream and checks only whole-file
// writes of main files are reported.
func TestPipelineStream(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	in := strings.Join([]string{
		`{"tool_name":"edit_file","content":{"file_path":"index.html"}}`,
		`{"tool_name":"create_file","content":{"file_path":"styles.css"}}`,
		`{"tool_name":"create_file","content":{"file_path":"dashboard.html"}}`,
	}, "\n")
	stdout, _ := e.mustRun([]byte(in), "stream", "--json")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"file_name":"dashboard.html"`) {
		t.Errorf("stream output:\n%s", stdout)
	}
}
