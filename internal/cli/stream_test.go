package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/scbrown/deliverable/internal/delivery"
)

const streamFixture = `{"tool_name":"create_file","content":{"file_path":"site/style.css"}}
{"tool_name":"create_file","content":{"file_path":"site/index.html"}}

{"tool_name":"edit_file","content":{"file_path":"site/index.html"}}
not json
{"index":40,"tool_name":"full_file_rewrite","content":"<parameter name=\"target_file\">app\\main.py</parameter>"}
`

func TestStreamMoments(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer

	_, logs := captureStdoutAndLogs(t, func() {
		n, err := StreamMoments(strings.NewReader(streamFixture), &out, delivery.DefaultScanner)
		if err != nil {
			t.Fatalf("StreamMoments: %v", err)
		}
		if n != 2 {
			t.Errorf("moments = %d, want 2", n)
		}
	})

	want := "delivery: index.html (event 1, create_file)\n" +
		"delivery: main.py (event 40, full_file_rewrite)\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
	if !strings.Contains(logs, "Skipping line 5") {
		t.Errorf("expected warning for bad line, got logs:\n%s", logs)
	}
}

func TestStreamMomentsJSON(t *testing.T) {
	resetFlags(t)
	jsonOutput = true
	var out bytes.Buffer

	if _, err := StreamMoments(strings.NewReader(streamFixture), &out, delivery.DefaultScanner); err != nil {
		t.Fatalf("StreamMoments: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	var m momentOutput
	if err := json.Unmarshal([]byte(lines[1]), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Index != 40 || m.ToolName != "full_file_rewrite" || m.FullPath != `app\main.py` || m.FileName != "main.py" {
		t.Errorf("moment = %+v", m)
	}
}

func TestStreamCmd(t *testing.T) {
	resetFlags(t)
	pipeStdin(t, "{\"tool_name\":\"create_file\",\"content\":\"file_path: \\\"game/game.html\\\"\"}\n")

	out, err := execute(t, "stream")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "delivery: game.html (event 0, create_file)\n" {
		t.Errorf("got %q", out)
	}
}
