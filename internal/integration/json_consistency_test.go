//go:build integration

package integration

import (
	"encoding/json"
	"testing"
)

// TestAllCommandsJSON verifies every command supporting --json produces
// valid JSON output.
func TestAllCommandsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin []byte
	}{
		{name: "sources", args: []string{"sources", "--json"}},
		{name: "config", args: []string{"config", "--json"}},
		{name: "patterns", args: []string{"patterns", "--json"}},
		{name: "classify", args: []string{"classify", "index.html", "style.css", "--json"}},
		{name: "extract", args: []string{"extract", "--json"}, stdin: []byte(`{"file_path":"a/b/main.py"}`)},
		{name: "scan", args: []string{"scan", "--json"}, stdin: []byte(`[]`)},
		{name: "scan_explain", args: []string{"scan", "--json", "--explain", "--source", "claude-code", fixture("out_of_order.jsonl")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			stdout, stderr, err := e.run(tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("dlvr %v failed: %v\nstdout: %s\nstderr: %s", tt.args, err, stdout, stderr)
			}
			if stdout == "" {
				t.Fatalf("dlvr %v produced no stdout", tt.args)
			}
			var parsed json.RawMessage
			if err := json.Unmarshal([]byte(stdout), &parsed); err != nil {
				t.Errorf("dlvr %v output is not valid JSON: %v\noutput: %s", tt.args, err, stdout)
			}
		})
	}
}
