package source

import (
	"fmt"
	"io"
	"regexp"

	"github.com/scbrown/deliverable/internal/model"
)

// reInvoke matches <invoke name="TOOL">...</invoke> blocks, with an
// optional namespace prefix on the tag.
var reInvoke = regexp.MustCompile(`(?s)<(?:[\w-]+:)?invoke\s+name="([^"]+)"\s*>(.*?)</(?:[\w-]+:)?invoke>`)

// invokeXML implements Source for raw assistant text where tool calls are
// serialized as XML-like invoke blocks.
type invokeXML struct{}

func init() {
	Register(&invokeXML{})
}

// Name returns "invoke-xml".
func (x *invokeXML) Name() string { return "invoke-xml" }

// Description returns a short human-readable description of this source.
func (x *invokeXML) Description() string {
	return `assistant text with <invoke name="tool">...</invoke> blocks`
}

// Events returns one event per invoke block, in document order. The text
// between the tags becomes the event's content.
func (x *invokeXML) Events(r io.Reader) ([]model.ToolCallEvent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("invoke-xml: reading input: %w", err)
	}
	matches := reInvoke.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	out := make([]model.ToolCallEvent, len(matches))
	for i, m := range matches {
		out[i] = model.ToolCallEvent{
			Index:    i,
			ToolName: string(m[1]),
			Content:  model.Text(m[2]),
		}
	}
	return out, nil
}
