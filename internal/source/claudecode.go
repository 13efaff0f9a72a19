package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scbrown/deliverable/internal/cmdparse"
	"github.com/scbrown/deliverable/internal/model"
	"github.com/scbrown/deliverable/internal/transcript"
)

// claudeToolAliases maps Claude Code tool names onto the file-mutation
// tool names the delivery scanner understands.
var claudeToolAliases = map[string]string{
	"Write":        "create_file",
	"Edit":         "edit_file",
	"MultiEdit":    "edit_file",
	"NotebookEdit": "edit_file",
}

// claudeCode implements Source for Claude Code session transcripts.
type claudeCode struct{}

func init() {
	Register(&claudeCode{})
}

// Name returns "claude-code".
func (c *claudeCode) Name() string { return "claude-code" }

// Description returns a short human-readable description of this source.
func (c *claudeCode) Description() string {
	return "Claude Code session transcript (~/.claude/projects/*/*.jsonl)"
}

// Events parses the transcript and returns one event per tool_use block,
// with the tool input object as content. Write and Edit style tools are
// renamed to create_file and edit_file; other names pass through. A Bash
// call that overwrites files becomes one create_file event per file.
func (c *claudeCode) Events(r io.Reader) ([]model.ToolCallEvent, error) {
	calls, err := transcript.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("claude-code: %w", err)
	}
	out := make([]model.ToolCallEvent, 0, len(calls))
	for _, call := range calls {
		if call.ToolName == "Bash" {
			if targets := shellWrites(call.Input); len(targets) > 0 {
				for _, target := range targets {
					out = append(out, model.ToolCallEvent{
						Index:    len(out),
						ToolName: "create_file",
						Content:  model.Object{"file_path": target},
					})
				}
				continue
			}
		}
		name := call.ToolName
		if alias, ok := claudeToolAliases[name]; ok {
			name = alias
		}
		out = append(out, model.ToolCallEvent{
			Index:    len(out),
			ToolName: name,
			Content:  model.ContentFromJSON(call.Input),
		})
	}
	return out, nil
}

// shellWrites returns the files a Bash tool input overwrites.
func shellWrites(input json.RawMessage) []string {
	var in struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(input, &in); err != nil || in.Command == "" {
		return nil
	}
	return cmdparse.WriteTargets(in.Command)
}
