// Package model defines core types for deliverable: tool call events emitted
// by an AI agent, the paths extracted from them, and the delivery decision
// computed over a transcript.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content is the untyped payload attached to a tool call. It is one of
// Text or Object; a nil Content means the payload was absent or null.
type Content interface {
	isContent()
}

// Text is a string payload. It may or may not hold serialized JSON.
type Text string

// Object is a decoded JSON object payload, with or without a "content" key.
type Object map[string]any

func (Text) isContent()   {}
func (Object) isContent() {}

// ContentFromJSON maps a raw JSON value onto a Content variant. JSON strings
// become Text, objects become Object, null becomes nil and every other value
// (arrays, numbers, booleans, undecodable bytes) becomes Text of its raw form.
func ContentFromJSON(raw json.RawMessage) Content {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Text(raw)
		}
		return Text(s)
	case '{':
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return Text(raw)
		}
		return Object(obj)
	}
	return Text(raw)
}

// ToolCallEvent is one tool invocation in a transcript.
type ToolCallEvent struct {
	Index    int     `json:"index"`     // 0-based position in the original sequence
	ToolName string  `json:"tool_name"`
	Content  Content `json:"content,omitempty"`
}

// UnmarshalJSON decodes an event, accepting any JSON shape for content.
func (e *ToolCallEvent) UnmarshalJSON(data []byte) error {
	var aux struct {
		Index    int             `json:"index"`
		ToolName string          `json:"tool_name"`
		Content  json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding tool call event: %w", err)
	}
	e.Index = aux.Index
	e.ToolName = aux.ToolName
	e.Content = ContentFromJSON(aux.Content)
	return nil
}

// ExtractedPath is a file path recovered from a tool call payload.
// FileName is never empty when FullPath is non-empty.
type ExtractedPath struct {
	FullPath string `json:"full_path"`
	FileName string `json:"file_name"`
}

// Classification categorizes a bare file name.
type Classification int

const (
	Unclassified Classification = iota
	Auxiliary
	Main
)

// String returns the lowercase name of the classification.
func (c Classification) String() string {
	switch c {
	case Auxiliary:
		return "auxiliary"
	case Main:
		return "main"
	default:
		return "unclassified"
	}
}

// MarshalText encodes the classification as its name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a classification name.
func (c *Classification) UnmarshalText(b []byte) error {
	switch string(b) {
	case "main":
		*c = Main
	case "auxiliary":
		*c = Auxiliary
	case "unclassified", "":
		*c = Unclassified
	default:
		return fmt.Errorf("unknown classification %q", string(b))
	}
	return nil
}

// Decision is the outcome of scanning a transcript for its main deliverable.
// Index is nil when no event classified as Main.
type Decision struct {
	Index    *int   `json:"index"`
	FileName string `json:"file_name,omitempty"`
}

// Found reports whether a main deliverable was identified.
func (d Decision) Found() bool { return d.Index != nil }

// Verdict records how a single file-mutation event was judged.
type Verdict struct {
	Index    int            `json:"index"`
	ToolName string         `json:"tool_name"`
	Path     *ExtractedPath `json:"path,omitempty"`
	Pattern  string         `json:"pattern,omitempty"`
	Class    Classification `json:"class"`
	Reason   string         `json:"reason"`
}

// Report is the result of scanning one transcript.
type Report struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	File     string    `json:"file,omitempty"`
	Events   int       `json:"events"`
	Decision Decision  `json:"decision"`
	Verdicts []Verdict `json:"verdicts,omitempty"`
}
