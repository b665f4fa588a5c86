// Package frontmatter detects, merges and renders the YAML front-matter
// block of an exported note.
//
// The block is handled as a flat line list with four recognized field
// prefixes (title, date, draft, tags), not as a full YAML document. This is
// deliberate: unknown fields must round-trip byte-for-byte even when the
// existing block is not valid YAML, which a real parser cannot guarantee.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkarppi/verso/internal/tags"
)

// Delimiter is the line that opens and closes a front-matter block.
const Delimiter = "---"

// Block is an ordered list of raw front-matter lines. Lines includes the
// opening delimiter but not the closing one; Render appends it.
type Block struct {
	Lines []string
}

// Detect splits a document into its front-matter block and body. The block
// is present only when the first line is a delimiter and a second delimiter
// line exists later; otherwise the block is nil and the body is the whole
// document.
func Detect(text string) (*Block, string) {
	lines := strings.Split(text, "\n")
	if strings.TrimSpace(lines[0]) != Delimiter {
		return nil, text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			block := &Block{Lines: lines[:i]}
			return block, strings.Join(lines[i+1:], "\n")
		}
	}
	return nil, text
}

// Merge produces the final front-matter block for a note. With no existing
// block it synthesizes exactly the four managed fields. With an existing
// block it preserves every unmanaged line verbatim and in order, replaces
// managed field lines, merges tags (set union, case-sensitive) and appends
// any managed field that was absent.
func Merge(existing *Block, title, date string, tagList []string) Block {
	if existing == nil {
		return Block{Lines: []string{
			Delimiter,
			renderTitle(title),
			renderDate(date),
			renderDraft(),
			renderTags(tagList),
		}}
	}

	merged := tags.Merge(existingTags(existing), tagList)

	out := []string{Delimiter}
	var haveTitle, haveDate, haveDraft, haveTags bool
	inTagList := false

	for i, line := range existing.Lines {
		if i == 0 {
			// Leading delimiter already emitted.
			continue
		}
		trimmed := strings.TrimSpace(line)

		if inTagList {
			if strings.HasPrefix(trimmed, "-") {
				// List items were consumed by the tag collection pass.
				continue
			}
			inTagList = false
		}

		switch {
		case strings.HasPrefix(trimmed, "title:") && !haveTitle:
			out = append(out, renderTitle(title))
			haveTitle = true
		case strings.HasPrefix(trimmed, "date:") && !haveDate:
			out = append(out, renderDate(date))
			haveDate = true
		case strings.HasPrefix(trimmed, "draft:") && !haveDraft:
			out = append(out, renderDraft())
			haveDraft = true
		case strings.HasPrefix(trimmed, "tags:") && !haveTags:
			out = append(out, renderTags(merged))
			haveTags = true
			inTagList = trimmed == "tags:"
		default:
			out = append(out, line)
		}
	}

	if !haveTitle {
		out = append(out, renderTitle(title))
	}
	if !haveDate {
		out = append(out, renderDate(date))
	}
	if !haveDraft {
		out = append(out, renderDraft())
	}
	if !haveTags {
		out = append(out, renderTags(merged))
	}

	return Block{Lines: out}
}

// Render serializes the block, terminated by the closing delimiter line.
func (b Block) Render() string {
	return strings.Join(b.Lines, "\n") + "\n" + Delimiter + "\n"
}

// existingTags collects the tags already present in a block, from either an
// inline bracketed list or the nested list-item form.
func existingTags(block *Block) []string {
	set := tags.NewSet()
	inTagList := false

	for i, line := range block.Lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimSpace(line)

		if inTagList {
			if strings.HasPrefix(trimmed, "-") {
				set.Add(strings.TrimPrefix(trimmed, "-"))
				continue
			}
			inTagList = false
		}

		if !strings.HasPrefix(trimmed, "tags:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(trimmed, "tags:"))
		if value == "" {
			inTagList = true
			continue
		}
		set.AddAll(parseInlineList(value))
	}

	return set.Slice()
}

// parseInlineList parses a bracketed tag list value like ["a", b]. YAML
// flow sequences cover the common cases; malformed lists fall back to a
// plain comma split.
func parseInlineList(value string) []string {
	var parsed []string
	if err := yaml.Unmarshal([]byte(value), &parsed); err == nil && parsed != nil {
		return parsed
	}
	value = strings.Trim(value, "[]")
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func renderTitle(title string) string {
	return fmt.Sprintf("title: %q", title)
}

func renderDate(date string) string {
	return "date: " + date
}

func renderDraft() string {
	return "draft: false"
}

func renderTags(tagList []string) string {
	if len(tagList) == 0 {
		return "tags: []"
	}
	quoted := make([]string, len(tagList))
	for i, tag := range tagList {
		quoted[i] = fmt.Sprintf("%q", tag)
	}
	return "tags: [" + strings.Join(quoted, ", ") + "]"
}
