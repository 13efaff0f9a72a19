package delivery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scbrown/deliverable/internal/model"
)

// Form identifies how a path key is serialized inside a blob.
type Form int

const (
	// FormParameterTag is <parameter name="KEY">VALUE</parameter>.
	FormParameterTag Form = iota
	// FormAssignment is KEY, optionally quoted, followed by ':', '=' or
	// whitespace and a single- or double-quoted value.
	FormAssignment
	// FormJSONKey is "KEY": "VALUE".
	FormJSONKey
)

func (f Form) String() string {
	switch f {
	case FormParameterTag:
		return "parameter"
	case FormAssignment:
		return "assignment"
	case FormJSONKey:
		return "json"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

// PathKeys lists the accepted spellings of the path key, in priority order.
var PathKeys = []string{"file_path", "target_file", "file-path", "target-file"}

// formTemplates holds one regexp template per form; %s is the quoted key.
var formTemplates = []struct {
	form Form
	tmpl string
}{
	{FormParameterTag, `<parameter\s+name="%s"\s*>([^<]*)</parameter>`},
	{FormAssignment, `%s["']?\s*[:=\s]\s*(?:"([^"]*)"|'([^']*)')`},
	{FormJSONKey, `"%s"\s*:\s*"([^"]*)"`},
}

// Pattern is one entry of the ordered extraction table.
type Pattern struct {
	Name string // e.g. "parameter:file_path"
	Form Form
	Key  string
	re   *regexp.Regexp
}

// Match returns the first non-blank value the pattern captures in blob.
func (p Pattern) Match(blob string) (string, bool) {
	if p.re == nil {
		return "", false
	}
	for _, m := range p.re.FindAllStringSubmatch(blob, -1) {
		for _, g := range m[1:] {
			if v := strings.TrimSpace(g); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Patterns is the ordered extraction table: every form, each with all key
// spellings, forms in priority order. The first pattern that matches wins.
var Patterns = buildPatterns()

func buildPatterns() []Pattern {
	out := make([]Pattern, 0, len(formTemplates)*len(PathKeys))
	for _, ft := range formTemplates {
		for _, key := range PathKeys {
			out = append(out, Pattern{
				Name: ft.form.String() + ":" + key,
				Form: ft.form,
				Key:  key,
				re:   regexp.MustCompile(fmt.Sprintf(ft.tmpl, regexp.QuoteMeta(key))),
			})
		}
	}
	return out
}

// ExtractPath recovers a file path from blob using the pattern table.
// It reports false when no pattern matches.
func ExtractPath(blob string) (model.ExtractedPath, bool) {
	p, _, ok := FindPath(blob)
	return p, ok
}

// FindPath is ExtractPath that also returns the pattern which matched.
func FindPath(blob string) (model.ExtractedPath, Pattern, bool) {
	if blob == "" {
		return model.ExtractedPath{}, Pattern{}, false
	}
	for _, pat := range Patterns {
		if v, ok := pat.Match(blob); ok {
			return model.ExtractedPath{FullPath: v, FileName: Basename(v)}, pat, true
		}
	}
	return model.ExtractedPath{}, Pattern{}, false
}

// Basename returns the last path segment of fullPath, splitting on both
// '/' and '\' and ignoring empty, "." and ".." segments. If no segment
// remains, fullPath is returned unchanged.
func Basename(fullPath string) string {
	segs := strings.FieldsFunc(fullPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for i := len(segs) - 1; i >= 0; i-- {
		if s := segs[i]; s != "." && s != ".." {
			return s
		}
	}
	return fullPath
}
