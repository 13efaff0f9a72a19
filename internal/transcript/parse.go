// Package transcript parses Claude Code JSONL session transcripts into the
// ordered list of tool calls the assistant made.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Call is one tool_use block emitted by the assistant.
type Call struct {
	SessionID string
	ToolName  string
	ToolUseID string
	Input     json.RawMessage // tool input parameters
	Timestamp time.Time
}

// event is the minimal JSONL event shape we need for parsing.
type event struct {
	UUID      string          `json:"uuid"`
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Message   json.RawMessage `json:"message,omitempty"`
}

// messageEnvelope is the shape of the message field on user/assistant events.
type messageEnvelope struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// contentBlock represents one block in an assistant message's content array.
type contentBlock struct {
	Type  string          `json:"type"`
	Name  string          `json:"name,omitempty"`
	ID    string          `json:"id,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// Parse reads Claude Code transcript JSONL from r and returns every tool
// call in chronological order. Events with equal timestamps keep their line
// order, as do multiple tool_use blocks within one message.
func Parse(r io.Reader) ([]Call, error) {
	events, err := readEvents(r)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	// Detect sessionID from first event that has one.
	sessionID := ""
	for _, e := range events {
		if e.SessionID != "" {
			sessionID = e.SessionID
			break
		}
	}

	var calls []Call
	for i := range events {
		e := &events[i]
		blocks := toolUses(e)
		for _, b := range blocks {
			sid := e.SessionID
			if sid == "" {
				sid = sessionID
			}
			calls = append(calls, Call{
				SessionID: sid,
				ToolName:  b.Name,
				ToolUseID: b.ID,
				Input:     b.Input,
				Timestamp: e.Timestamp,
			})
		}
	}
	return calls, nil
}

// readEvents reads all JSONL lines from r and returns parsed events.
func readEvents(r io.Reader) ([]event, error) {
	scanner := bufio.NewScanner(r)
	// Allow large lines (transcripts can have big tool inputs).
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var events []event
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

// toolUses returns the tool_use content blocks of an assistant event.
// Messages that fail to decode or carry string content yield nothing.
func toolUses(e *event) []contentBlock {
	if e.Type != "assistant" || len(e.Message) == 0 {
		return nil
	}
	var env messageEnvelope
	if err := json.Unmarshal(e.Message, &env); err != nil {
		return nil
	}
	if env.Role != "assistant" {
		return nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(env.Content, &blocks); err != nil {
		return nil // content might be a string
	}

	var out []contentBlock
	for _, b := range blocks {
		if b.Type == "tool_use" && b.Name != "" {
			out = append(out, b)
		}
	}
	return out
}
