// Package cmdparse provides lightweight shell command parsing for the shell
// calls found in agent transcripts. It splits command strings on pipes,
// chain operators and newlines, and reports the files a command overwrites
// through output redirection or tee.
package cmdparse

import (
	"regexp"
	"strings"
)

// Segment represents one command in a pipeline or chain.
type Segment struct {
	Command string   // program name (e.g., "cat")
	Tokens  []string // all tokens after the command
	Raw     string   // original text of this segment (trimmed)
}

// Parse splits a command string into Segments on |, &&, ||, ; and newlines.
// It respects single and double quotes and backslash escapes. Heredoc
// bodies are dropped before splitting.
func Parse(cmd string) []Segment {
	parts := splitOperators(stripHeredocs(cmd))
	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		tokens := tokenize(trimmed)
		s := Segment{Raw: trimmed}
		if len(tokens) > 0 {
			s.Command = tokens[0]
			s.Tokens = tokens[1:]
		}
		segs = append(segs, s)
	}
	return segs
}

// WriteTargets returns the files cmd replaces wholesale, in order of
// appearance and without duplicates. Appending redirects (>>), tee -a and
// writes to /dev/* are not counted.
func WriteTargets(cmd string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(target string) {
		target = unquote(target)
		if target == "" || strings.HasPrefix(target, "/dev/") || strings.HasPrefix(target, "&") || seen[target] {
			return
		}
		seen[target] = true
		out = append(out, target)
	}

	for _, seg := range Parse(cmd) {
		tokens := append([]string{seg.Command}, seg.Tokens...)
		for i := 0; i < len(tokens); i++ {
			rest, ok := redirect(tokens[i])
			if !ok {
				continue
			}
			if rest != "" {
				add(rest)
			} else if i+1 < len(tokens) {
				i++
				add(tokens[i])
			}
		}
		if seg.Command == "tee" {
			for _, t := range teeTargets(seg.Tokens) {
				add(t)
			}
		}
	}
	return out
}

// truncatingOps are the redirect operators that replace a file. Longer
// operators come first so prefixes match correctly.
var truncatingOps = []string{"&>", "1>", ">|", ">"}

// appendingOps are redirects that never replace a file.
var appendingOps = []string{">>", "1>>", "&>>", ">&", "1>&"}

// redirect reports whether tok is a truncating output redirect, returning
// any target glued to the operator (">out.html").
func redirect(tok string) (string, bool) {
	for _, o := range appendingOps {
		if strings.HasPrefix(tok, o) {
			return "", false
		}
	}
	for _, o := range truncatingOps {
		if strings.HasPrefix(tok, o) {
			return tok[len(o):], true
		}
	}
	return "", false
}

// teeTargets returns tee's file operands unless it was asked to append.
func teeTargets(args []string) []string {
	var files []string
	for _, a := range args {
		switch {
		case a == "-a" || a == "--append":
			return nil
		case strings.HasPrefix(a, "-"):
			if !strings.HasPrefix(a, "--") && strings.ContainsRune(a, 'a') {
				return nil
			}
		case strings.HasPrefix(a, ">") || strings.HasPrefix(a, "<"):
			return files
		default:
			files = append(files, a)
		}
	}
	return files
}

// reHeredoc finds a heredoc operator and its delimiter, skipping <<<.
var reHeredoc = regexp.MustCompile(`(?:^|[^<])<<-?\s*['"]?([A-Za-z_][A-Za-z0-9_]*)['"]?`)

// stripHeredocs drops the body lines of every heredoc in cmd, keeping the
// line that opens it.
func stripHeredocs(cmd string) string {
	lines := strings.Split(cmd, "\n")
	out := make([]string, 0, len(lines))
	var pending []string // delimiters still to close, in order
	for _, line := range lines {
		if len(pending) > 0 {
			if strings.TrimSpace(line) == pending[0] {
				pending = pending[1:]
			}
			continue
		}
		out = append(out, line)
		for _, m := range reHeredoc.FindAllStringSubmatch(line, -1) {
			pending = append(pending, m[1])
		}
	}
	return strings.Join(out, "\n")
}

// splitOperators splits on unquoted |, &&, ||, ; and newlines.
func splitOperators(cmd string) []string {
	var parts []string
	inSingle := false
	inDouble := false
	escaped := false
	segStart := 0

	i := 0
	for i < len(cmd) {
		ch := cmd[i]
		if escaped {
			escaped = false
			i++
			continue
		}
		if ch == '\\' && !inSingle {
			escaped = true
			i++
			continue
		}
		if ch == '\'' && !inDouble {
			inSingle = !inSingle
			i++
			continue
		}
		if ch == '"' && !inSingle {
			inDouble = !inDouble
			i++
			continue
		}
		if inSingle || inDouble {
			i++
			continue
		}

		switch {
		case ch == ';' || ch == '\n':
			parts = append(parts, cmd[segStart:i])
			segStart = i + 1
			i++
		case ch == '|' && i+1 < len(cmd) && cmd[i+1] == '|':
			parts = append(parts, cmd[segStart:i])
			segStart = i + 2
			i += 2
		case ch == '|' && (i == 0 || cmd[i-1] != '>'):
			parts = append(parts, cmd[segStart:i])
			segStart = i + 1
			i++
		case ch == '&' && i+1 < len(cmd) && cmd[i+1] == '&':
			parts = append(parts, cmd[segStart:i])
			segStart = i + 2
			i += 2
		default:
			i++
		}
	}
	if segStart < len(cmd) {
		parts = append(parts, cmd[segStart:])
	}
	return parts
}

// tokenize splits a command segment into tokens, respecting quotes and escapes.
// Quotes are preserved in tokens; it does not interpret shell syntax beyond
// basic quoting.
func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			current.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' && !inSingle {
			escaped = true
			if inDouble {
				current.WriteByte(ch)
			}
			continue
		}
		if ch == '\'' && !inDouble {
			inSingle = !inSingle
			current.WriteByte(ch)
			continue
		}
		if ch == '"' && !inSingle {
			inDouble = !inDouble
			current.WriteByte(ch)
			continue
		}
		if (ch == ' ' || ch == '\t') && !inSingle && !inDouble {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteByte(ch)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
