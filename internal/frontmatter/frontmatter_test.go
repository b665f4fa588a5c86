package frontmatter

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBlock bool
		wantBody  string
	}{
		{
			name:      "block present",
			input:     "---\ntitle: \"Old\"\n---\nBody",
			wantBlock: true,
			wantBody:  "Body",
		},
		{
			name:      "no opening delimiter",
			input:     "Hello\nWorld",
			wantBlock: false,
			wantBody:  "Hello\nWorld",
		},
		{
			name:      "no closing delimiter",
			input:     "---\ntitle: \"Old\"\nBody",
			wantBlock: false,
			wantBody:  "---\ntitle: \"Old\"\nBody",
		},
		{
			name:      "delimiter not first line",
			input:     "Intro\n---\ntitle: x\n---\n",
			wantBlock: false,
			wantBody:  "Intro\n---\ntitle: x\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body := Detect(tt.input)
			if (block != nil) != tt.wantBlock {
				t.Fatalf("Detect() block presence = %v, want %v", block != nil, tt.wantBlock)
			}
			if body != tt.wantBody {
				t.Errorf("Detect() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestMergeSynthesizesNewBlock(t *testing.T) {
	block := Merge(nil, "My Note", "2026-08-24T10:00:00Z", []string{"go", "notes"})
	rendered := block.Render()

	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	if lines[0] != "---" || lines[len(lines)-1] != "---" {
		t.Fatalf("block not delimited: %q", rendered)
	}

	want := []string{
		`title: "My Note"`,
		"date: 2026-08-24T10:00:00Z",
		"draft: false",
		`tags: ["go", "notes"]`,
	}
	for i, w := range want {
		if lines[i+1] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], w)
		}
	}
}

func TestMergeSynthesizesEmptyTags(t *testing.T) {
	block := Merge(nil, "n", "2026-08-24T10:00:00Z", nil)
	if !strings.Contains(block.Render(), "tags: []") {
		t.Errorf("expected empty bracket tags, got %q", block.Render())
	}
}

// Each managed field appears exactly once in a synthesized block.
func TestMergeFieldCount(t *testing.T) {
	rendered := Merge(nil, "n", "2026-08-24T10:00:00Z", []string{"a"}).Render()
	for _, field := range []string{"title:", "date:", "draft:", "tags:"} {
		if n := strings.Count(rendered, field); n != 1 {
			t.Errorf("field %q appears %d times, want 1", field, n)
		}
	}
}

func TestMergePreservesUnknownFields(t *testing.T) {
	existing := &Block{Lines: []string{
		"---",
		"aliases: [note-1]",
		`title: "Old"`,
		"cssclass: wide",
	}}

	block := Merge(existing, "New", "2026-08-24T10:00:00Z", nil)
	rendered := block.Render()

	aliasIdx := strings.Index(rendered, "aliases: [note-1]")
	titleIdx := strings.Index(rendered, `title: "New"`)
	cssIdx := strings.Index(rendered, "cssclass: wide")

	if aliasIdx < 0 || titleIdx < 0 || cssIdx < 0 {
		t.Fatalf("missing expected lines in %q", rendered)
	}
	if !(aliasIdx < titleIdx && titleIdx < cssIdx) {
		t.Errorf("unknown fields reordered: %q", rendered)
	}
	if strings.Contains(rendered, `"Old"`) {
		t.Errorf("old title survived: %q", rendered)
	}
}

func TestMergeAppendsMissingFields(t *testing.T) {
	existing := &Block{Lines: []string{"---", `title: "Old"`}}

	rendered := Merge(existing, "Old", "2026-08-24T10:00:00Z", nil).Render()

	for _, want := range []string{
		`title: "Old"`,
		"date: 2026-08-24T10:00:00Z",
		"draft: false",
		"tags: []",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("missing %q in %q", want, rendered)
		}
	}
}

func TestMergeUnionsInlineTags(t *testing.T) {
	existing := &Block{Lines: []string{"---", `tags: ["old", "shared"]`}}

	rendered := Merge(existing, "n", "2026-08-24T10:00:00Z", []string{"shared", "new"}).Render()

	if !strings.Contains(rendered, `tags: ["old", "shared", "new"]`) {
		t.Errorf("tag union wrong: %q", rendered)
	}
}

func TestMergeConsumesNestedTagList(t *testing.T) {
	existing := &Block{Lines: []string{
		"---",
		"tags:",
		"- alpha",
		`- "beta"`,
		"author: me",
	}}

	rendered := Merge(existing, "n", "2026-08-24T10:00:00Z", []string{"gamma"}).Render()

	if !strings.Contains(rendered, `tags: ["alpha", "beta", "gamma"]`) {
		t.Errorf("nested list not merged: %q", rendered)
	}
	if strings.Contains(rendered, "- alpha") {
		t.Errorf("stale list item re-emitted: %q", rendered)
	}
	if !strings.Contains(rendered, "author: me") {
		t.Errorf("field after list lost: %q", rendered)
	}
}

func TestMergeTagsAreCaseSensitive(t *testing.T) {
	existing := &Block{Lines: []string{"---", `tags: ["Go"]`}}

	rendered := Merge(existing, "n", "2026-08-24T10:00:00Z", []string{"go"}).Render()

	if !strings.Contains(rendered, `tags: ["Go", "go"]`) {
		t.Errorf("case-sensitive union broken: %q", rendered)
	}
}

// The emitted block must stay parseable by a strict YAML reader even though
// it is assembled line by line.
func TestRenderedBlockIsValidYAML(t *testing.T) {
	rendered := Merge(nil, `He said "hi"`, "2026-08-24T10:00:00Z", []string{"a b", "c"}).Render()

	inner := strings.TrimPrefix(rendered, "---\n")
	inner = strings.TrimSuffix(inner, "---\n")

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(inner), &parsed); err != nil {
		t.Fatalf("rendered block is not valid YAML: %v\n%s", err, rendered)
	}
	if parsed["draft"] != false {
		t.Errorf("draft = %v, want false", parsed["draft"])
	}
}
