package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/scbrown/deliverable/internal/model"
)

// eventList implements Source for transcripts that are already a list of
// tool call events, either a JSON array or one JSON object per line.
type eventList struct{}

func init() {
	Register(&eventList{})
}

// Name returns "events".
func (e *eventList) Name() string { return "events" }

// Description returns a short human-readable description of this source.
func (e *eventList) Description() string {
	return "JSON array or JSONL of {index, tool_name, content} events"
}

// rawEvent is the wire shape of one event. Index is optional.
type rawEvent struct {
	Index    *int            `json:"index"`
	ToolName string          `json:"tool_name"`
	Content  json.RawMessage `json:"content"`
}

func (r rawEvent) toEvent(pos int) model.ToolCallEvent {
	idx := pos
	if r.Index != nil {
		idx = *r.Index
	}
	return model.ToolCallEvent{
		Index:    idx,
		ToolName: r.ToolName,
		Content:  model.ContentFromJSON(r.Content),
	}
}

// Events parses a JSON array or JSONL stream of events. Missing indexes
// are filled with the event's position.
func (e *eventList) Events(r io.Reader) ([]model.ToolCallEvent, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("events: reading input: %w", err)
	}
	if first == '[' {
		var raws []rawEvent
		if err := json.NewDecoder(br).Decode(&raws); err != nil {
			return nil, fmt.Errorf("events: parsing JSON array: %w", err)
		}
		out := make([]model.ToolCallEvent, len(raws))
		for i, raw := range raws {
			out[i] = raw.toEvent(i)
		}
		return out, nil
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	var out []model.ToolCallEvent
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := DecodeEvent(line, len(out))
		if err != nil {
			return nil, fmt.Errorf("events: line %d: %w", lineNum, err)
		}
		out = append(out, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("events: reading input: %w", err)
	}
	return out, nil
}

// DecodeEvent parses a single JSON event. pos is used as the index when
// the event does not carry one.
func DecodeEvent(line []byte, pos int) (model.ToolCallEvent, error) {
	var raw rawEvent
	if err := json.Unmarshal(line, &raw); err != nil {
		return model.ToolCallEvent{}, fmt.Errorf("parsing event: %w", err)
	}
	return raw.toEvent(pos), nil
}

// peekNonSpace skips leading whitespace and returns the next byte without
// consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
