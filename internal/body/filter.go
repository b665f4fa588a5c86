// Package body implements the single-pass body line filter: inline tag
// extraction, YAML-style tag list consumption and header-scoped content
// suppression.
package body

import (
	"regexp"
	"strings"

	"github.com/mkarppi/verso/internal/tags"
)

var (
	headerRe    = regexp.MustCompile(`^(#+)(.*)$`)
	inlineTagRe = regexp.MustCompile(`#[^\s#]+`)
	listItemRe  = regexp.MustCompile(`^\s*-\s*(.*)$`)
	bracketRe   = regexp.MustCompile(`^\s*\[(.*)\]\s*$`)
)

// filterState tracks header-scoped skipping across the line pass.
// Skipping clears exactly when a header of level <= the trigger level
// appears; the header's own blacklist decision is evaluated before the
// level is updated.
type filterState struct {
	currentLevel int
	skipping     bool
	inTagList    bool
}

// Filter walks the body lines once, extracting tags into set and dropping
// all content nested under blacklisted headers. Returns the surviving lines.
func Filter(lines []string, blacklist []string, set *tags.Set) []string {
	blocked := make(map[string]bool, len(blacklist))
	for _, h := range blacklist {
		blocked[h] = true
	}

	var out []string
	state := filterState{}

	for _, line := range lines {
		if m := headerRe.FindStringSubmatch(line); m != nil {
			// A header always terminates an open tag list.
			state.inTagList = false

			level := len(m[1])
			text := strings.TrimSpace(m[2])

			if level <= state.currentLevel {
				state.skipping = false
			}
			if blocked[text] {
				state.skipping = true
				state.currentLevel = level
				continue
			}
			if state.skipping {
				// Nested under an active skip: dropped, and the trigger
				// level stays so only a header at or above it ends the skip.
				continue
			}
			state.currentLevel = level
			// Non-blacklisted headers are retained as body content.
			out = appendProcessed(out, line, set)
			continue
		}

		if state.skipping {
			// Suppressed content contributes no tags either.
			continue
		}

		if state.inTagList {
			if m := listItemRe.FindStringSubmatch(line); m != nil {
				set.Add(m[1])
				continue
			}
			if m := bracketRe.FindStringSubmatch(line); m != nil {
				for _, entry := range strings.Split(m[1], ",") {
					set.Add(entry)
				}
				continue
			}
			state.inTagList = false
		}

		if strings.TrimSpace(line) == "tags:" {
			state.inTagList = true
			continue
		}

		out = appendProcessed(out, line, set)
	}

	return out
}

// appendProcessed extracts inline hash tags from the line, strips the
// accepted ones and appends the result unless stripping emptied the line.
func appendProcessed(out []string, line string, set *tags.Set) []string {
	stripped := false
	emitted := line

	for _, token := range inlineTagRe.FindAllString(line, -1) {
		cleaned := tags.Clean(token)
		if cleaned == "" || tags.SymbolOnly(cleaned) {
			// Symbol-only tokens are not tags; leave them in place.
			continue
		}
		set.Add(cleaned)
		emitted = stripToken(emitted, token)
		stripped = true
	}

	if stripped && strings.TrimSpace(emitted) == "" {
		return out
	}
	return append(out, emitted)
}

// stripToken removes one occurrence of the token, swallowing one adjacent
// space so the surrounding words do not end up double-spaced.
func stripToken(line, token string) string {
	if i := strings.Index(line, " "+token); i >= 0 {
		return line[:i] + line[i+len(token)+1:]
	}
	if i := strings.Index(line, token+" "); i >= 0 {
		return line[:i] + line[i+len(token)+1:]
	}
	return strings.Replace(line, token, "", 1)
}
