//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestConfigDefaultSource verifies default_source is used when --source is
// omitted and that the flag still wins.
func TestConfigDefaultSource(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.mustRun(nil, "config", "default_source", "claude-code")

	stdout, _ := e.mustRun(nil, "scan", fixture("web_session.jsonl"))
	if !strings.Contains(stdout, "index.html") {
		t.Errorf("scan with configured source:\n%s", stdout)
	}

	events := e.writeFile("events.json", `[{"tool_name":"create_file","content":{"file_path":"run.py"}}]`)
	stdout, _ = e.mustRun(nil, "scan", "--source", "events", events)
	if !strings.Contains(stdout, "run.py") {
		t.Errorf("--source should override default_source:\n%s", stdout)
	}
}

// TestConfigDefaultFormat verifies default_format = "json" switches output.
func TestConfigDefaultFormat(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.writeConfig("default_format = \"json\"\n")

	stdout, _ := e.mustRun(nil, "classify", "main.py")
	var out []map[string]any
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("expected JSON output, got %v:\n%s", err, stdout)
	}
}

// TestConfigExtraTools verifies mutation_tools and moment_tools extend the
// scanner for sources with their own tool names.
func TestConfigExtraTools(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.writeConfig("mutation_tools = [\"Write\"]\nmoment_tools = [\"Write\"]\n")

	in := []byte(`{"tool_name":"Write","content":{"file_path":"app.js"}}`)
	stdout, _ := e.mustRun(in, "stream")
	if !strings.Contains(stdout, "app.js") {
		t.Errorf("configured moment tool not reported:\n%s", stdout)
	}
}

// TestConfigLogLevel verifies log_level from config enables debug output.
func TestConfigLogLevel(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.writeConfig("log_level = \"debug\"\n")

	_, stderr := e.mustRun([]byte(`[{"tool_name":"create_file","content":{"file_path":"main.py"}}]`), "scan")
	if !strings.Contains(stderr, "verdict") {
		t.Errorf("expected debug verdict log, got stderr:\n%s", stderr)
	}
}
