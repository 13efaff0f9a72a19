package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/scbrown/deliverable/internal/model"
)

// maxLayers bounds descent through nested content wrappers.
const maxLayers = 32

// Normalize turns a raw tool call payload into a single searchable blob.
//
// Text payloads that parse as a JSON object with a "content" field are
// unwrapped recursively; any other text is returned as is. Object payloads
// yield their "content" field (serialized if it is not a string) or, when
// there is none, the whole object serialized. A nil payload yields "".
func Normalize(raw model.Content) string {
	layers := Layers(raw)
	if len(layers) == 0 {
		return ""
	}
	return layers[len(layers)-1]
}

// Layers returns every blob visited while normalizing raw, outermost first.
// The last element is the value Normalize returns.
func Layers(raw model.Content) []string {
	switch c := raw.(type) {
	case model.Text:
		return textLayers(string(c))
	case model.Object:
		return objectLayers(c)
	default:
		return nil
	}
}

func textLayers(s string) []string {
	layers := []string{s}
	for len(layers) < maxLayers {
		inner, ok := innerContent(s)
		if !ok {
			break
		}
		s = inner
		layers = append(layers, s)
	}
	return layers
}

func objectLayers(o model.Object) []string {
	whole := serialize(map[string]any(o))
	v, ok := o["content"]
	if !ok || v == nil {
		return []string{whole}
	}
	if s, ok := v.(string); ok {
		return []string{whole, s}
	}
	return []string{whole, serialize(v)}
}

// innerContent parses s as exactly one JSON object and returns its "content" field as
// text. Strings are returned verbatim; other values are serialized.
func innerContent(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return "", false
	}
	// Anything after the object means s is not a single JSON document.
	if _, err := dec.Token(); err != io.EOF {
		return "", false
	}
	switch v := obj["content"].(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		out := serialize(v)
		return out, out != ""
	}
}

// serialize encodes v as compact JSON without HTML escaping, so markup
// such as <parameter> tags inside values stays searchable.
func serialize(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
