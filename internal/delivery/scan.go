// Package delivery detects the primary deliverable in a sequence of AI agent
// tool calls. It normalizes raw payloads, extracts the referenced file path,
// classifies the file name and picks the first event that produced a main
// file. Every function is pure and never panics on malformed input.
package delivery

import (
	"github.com/scbrown/deliverable/internal/model"
)

// DefaultMutationTools are the tool names the batch scanner inspects.
var DefaultMutationTools = []string{"create_file", "full_file_rewrite", "edit_file"}

// DefaultMomentTools are the tool names IsDeliveryMoment accepts. Only
// whole-file writes count as a live delivery, so edit_file is absent.
var DefaultMomentTools = []string{"create_file", "full_file_rewrite"}

// Verdict reasons.
const (
	ReasonNoPath       = "no path"
	ReasonAuxiliary    = "auxiliary"
	ReasonUnclassified = "unclassified"
	ReasonMain         = "main"
)

// Scanner finds delivery moments in tool call sequences.
// A Scanner is immutable and safe for concurrent use.
type Scanner struct {
	mutation   map[string]bool
	moment     map[string]bool
	classifier *Classifier
}

// NewScanner returns a scanner that inspects mutationTools in batch scans,
// accepts momentTools as single-event delivery moments and classifies file
// names with c. A nil c means DefaultClassifier.
func NewScanner(mutationTools, momentTools []string, c *Classifier) *Scanner {
	if c == nil {
		c = DefaultClassifier
	}
	return &Scanner{
		mutation:   toSet(mutationTools),
		moment:     toSet(momentTools),
		classifier: c,
	}
}

// DefaultScanner is configured with the default tool names and classifier.
var DefaultScanner = NewScanner(DefaultMutationTools, DefaultMomentTools, nil)

// WithTools returns a copy of s that additionally recognizes the given tool
// names.
func (s *Scanner) WithTools(mutationTools, momentTools []string) *Scanner {
	return NewScanner(
		append(keys(s.mutation), mutationTools...),
		append(keys(s.moment), momentTools...),
		s.classifier,
	)
}

// IsMutation reports whether toolName is inspected by batch scans.
func (s *Scanner) IsMutation(toolName string) bool { return s.mutation[toolName] }

// FindMainDelivery returns the first event, in order, whose file classifies
// as Main. Events with other tool names or without a path are skipped.
func (s *Scanner) FindMainDelivery(events []model.ToolCallEvent) model.Decision {
	for _, e := range events {
		if !s.mutation[e.ToolName] {
			continue
		}
		v := s.judge(e)
		if v.Class == model.Main {
			idx := e.Index
			return model.Decision{Index: &idx, FileName: v.Path.FileName}
		}
	}
	return model.Decision{}
}

// IsDeliveryMoment reports whether a single event is a whole-file write of
// a main file.
func (s *Scanner) IsDeliveryMoment(e model.ToolCallEvent) bool {
	if !s.moment[e.ToolName] {
		return false
	}
	return s.judge(e).Class == model.Main
}

// Explain returns one verdict per inspected event, up to and including the
// first Main event.
func (s *Scanner) Explain(events []model.ToolCallEvent) []model.Verdict {
	var out []model.Verdict
	for _, e := range events {
		if !s.mutation[e.ToolName] {
			continue
		}
		v := s.judge(e)
		out = append(out, v)
		if v.Class == model.Main {
			break
		}
	}
	return out
}

// Judge classifies a single event regardless of its tool name.
func (s *Scanner) Judge(e model.ToolCallEvent) model.Verdict { return s.judge(e) }

func (s *Scanner) judge(e model.ToolCallEvent) model.Verdict {
	v := model.Verdict{Index: e.Index, ToolName: e.ToolName, Reason: ReasonNoPath}
	path, pat, ok := Locate(e.Content)
	if !ok {
		return v
	}
	v.Path = &path
	v.Pattern = pat.Name
	v.Class = s.classifier.Classify(path.FileName)
	switch v.Class {
	case model.Main:
		v.Reason = ReasonMain
	case model.Auxiliary:
		v.Reason = ReasonAuxiliary
	default:
		v.Reason = ReasonUnclassified
	}
	return v
}

// Locate extracts a path from raw. The normalized blob is searched first;
// if it holds no path, each enclosing layer is tried in turn, ending with
// the whole payload.
func Locate(raw model.Content) (model.ExtractedPath, Pattern, bool) {
	layers := Layers(raw)
	for i := len(layers) - 1; i >= 0; i-- {
		if p, pat, ok := FindPath(layers[i]); ok {
			return p, pat, true
		}
	}
	return model.ExtractedPath{}, Pattern{}, false
}

// FindMainDelivery scans events with DefaultScanner.
func FindMainDelivery(events []model.ToolCallEvent) model.Decision {
	return DefaultScanner.FindMainDelivery(events)
}

// IsDeliveryMoment checks e with DefaultScanner.
func IsDeliveryMoment(e model.ToolCallEvent) bool {
	return DefaultScanner.IsDeliveryMoment(e)
}

// Explain traces events with DefaultScanner.
func Explain(events []model.ToolCallEvent) []model.Verdict {
	return DefaultScanner.Explain(events)
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			m[n] = true
		}
	}
	return m
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
