package delivery

import (
	"sort"

	"github.com/cloudflare/ahocorasick"
	"github.com/scbrown/deliverable/internal/model"
)

// Archetype groups the file names recognized as the canonical deliverable
// of one kind of project.
type Archetype struct {
	Name  string
	Files []string
}

// registry is the main file pattern registry, in display order.
var registry = []Archetype{
	{Name: "web", Files: []string{"index.html", "main.html", "home.html"}},
	{Name: "game", Files: []string{"index.html", "game.html", "game.js", "main.js"}},
	{Name: "python", Files: []string{"main.py", "app.py", "run.py", "__main__.py"}},
	{Name: "node", Files: []string{"index.js", "app.js", "server.js", "main.js", "index.ts", "app.ts", "server.ts"}},
	{Name: "dashboard", Files: []string{"dashboard.html", "index.html", "dashboard.js", "App.jsx", "App.tsx"}},
	{Name: "api", Files: []string{"api.py", "server.py", "app.py", "api.js", "server.js", "main.go"}},
}

// denylist holds exact file names that are never the deliverable.
var denylist = []string{
	"style.css",
	"styles.css",
	"config.js",
	"config.json",
	"package.json",
	"requirements.txt",
	".env",
	".gitignore",
	"README.md",
	"Dockerfile",
	"docker-compose.yml",
	"tsconfig.json",
	"webpack.config.js",
	"babel.config.js",
}

// auxiliarySubstrings mark test and spec files. The match is a plain
// case-sensitive substring test, so "latest.html" counts as auxiliary.
var auxiliarySubstrings = []string{"test.", "spec.", "_test.", ".test."}

// Classifier decides whether a bare file name is the main deliverable.
// It is safe for concurrent use.
type Classifier struct {
	denied  map[string]bool
	matcher *ahocorasick.Matcher
	main    map[string]bool
}

// NewClassifier builds a classifier from an exact denylist, a set of
// auxiliary substrings and a main file registry. The auxiliary rules always
// take precedence over the registry.
func NewClassifier(deny, substrings []string, archetypes []Archetype) *Classifier {
	c := &Classifier{
		denied: make(map[string]bool, len(deny)),
		main:   make(map[string]bool),
	}
	for _, name := range deny {
		c.denied[name] = true
	}
	var terms []string
	for _, s := range substrings {
		if s != "" {
			terms = append(terms, s)
		}
	}
	if len(terms) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(terms)
	}
	for _, a := range archetypes {
		for _, f := range a.Files {
			c.main[f] = true
		}
	}
	return c
}

// DefaultClassifier uses the built-in denylist, substrings and registry.
var DefaultClassifier = NewClassifier(denylist, auxiliarySubstrings, registry)

// Classify categorizes fileName. Matching is exact and case-sensitive.
func (c *Classifier) Classify(fileName string) model.Classification {
	if c.IsAuxiliary(fileName) {
		return model.Auxiliary
	}
	if c.main[fileName] {
		return model.Main
	}
	return model.Unclassified
}

// IsAuxiliary reports whether fileName is a support file.
func (c *Classifier) IsAuxiliary(fileName string) bool {
	if c.denied[fileName] {
		return true
	}
	if c.matcher == nil || fileName == "" {
		return false
	}
	return len(c.matcher.MatchThreadSafe([]byte(fileName))) > 0
}

// Classify categorizes fileName with DefaultClassifier.
func Classify(fileName string) model.Classification {
	return DefaultClassifier.Classify(fileName)
}

// Archetypes returns the archetype names in registry order.
func Archetypes() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

// Registry returns a copy of the main file registry keyed by archetype.
func Registry() map[string][]string {
	out := make(map[string][]string, len(registry))
	for _, a := range registry {
		out[a.Name] = append([]string(nil), a.Files...)
	}
	return out
}

// MainFiles returns the file names registered for archetype, or nil.
func MainFiles(archetype string) []string {
	for _, a := range registry {
		if a.Name == archetype {
			return append([]string(nil), a.Files...)
		}
	}
	return nil
}

// ArchetypesFor returns every archetype that lists fileName.
func ArchetypesFor(fileName string) []string {
	var out []string
	for _, a := range registry {
		for _, f := range a.Files {
			if f == fileName {
				out = append(out, a.Name)
				break
			}
		}
	}
	return out
}

// Denylist returns the exact auxiliary file names, sorted.
func Denylist() []string {
	out := append([]string(nil), denylist...)
	sort.Strings(out)
	return out
}

// AuxiliarySubstrings returns the substrings that mark a file as auxiliary.
func AuxiliarySubstrings() []string {
	return append([]string(nil), auxiliarySubstrings...)
}
