package body

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mkarppi/verso/internal/tags"
)

func runFilter(t *testing.T, input string, blacklist []string) ([]string, []string) {
	t.Helper()
	set := tags.NewSet()
	out := Filter(strings.Split(input, "\n"), blacklist, set)
	return out, set.Slice()
}

func TestFilterExtractsInlineAndListTags(t *testing.T) {
	input := "# Notes\nHello #draft world\ntags:\n- misc\n"

	out, got := runFilter(t, input, nil)

	wantTags := []string{"draft", "misc"}
	if !reflect.DeepEqual(got, wantTags) {
		t.Errorf("tags = %v, want %v", got, wantTags)
	}

	body := strings.Join(out, "\n")
	if !strings.Contains(body, "Hello world") {
		t.Errorf("inline tag not stripped cleanly: %q", body)
	}
	if strings.Contains(body, "#draft") || strings.Contains(body, "misc") {
		t.Errorf("tag markers leaked into body: %q", body)
	}
	if !strings.Contains(body, "# Notes") {
		t.Errorf("header dropped from body: %q", body)
	}
}

func TestFilterBlacklistedHeaderScope(t *testing.T) {
	input := "# Private\nsecret\n# Public\nvisible"

	out, _ := runFilter(t, input, []string{"Private"})
	body := strings.Join(out, "\n")

	if strings.Contains(body, "secret") || strings.Contains(body, "Private") {
		t.Errorf("blacklisted section leaked: %q", body)
	}
	if !strings.Contains(body, "# Public") || !strings.Contains(body, "visible") {
		t.Errorf("content after blacklisted section lost: %q", body)
	}
}

func TestFilterSkipCoversNestedHeaders(t *testing.T) {
	input := strings.Join([]string{
		"## Secrets",
		"hidden",
		"### Deeper",
		"also hidden #leak",
		"## Open",
		"shown",
	}, "\n")

	out, got := runFilter(t, input, []string{"Secrets"})
	body := strings.Join(out, "\n")

	if strings.Contains(body, "hidden") || strings.Contains(body, "Deeper") {
		t.Errorf("nested content survived skip: %q", body)
	}
	if !strings.Contains(body, "## Open") || !strings.Contains(body, "shown") {
		t.Errorf("equal-level header did not end skip: %q", body)
	}
	// Skipped lines contribute no tags.
	if len(got) != 0 {
		t.Errorf("tags extracted from skipped content: %v", got)
	}
}

func TestFilterShallowerHeaderEndsSkip(t *testing.T) {
	input := "## Private\nsecret\n# Top\nvisible"

	out, _ := runFilter(t, input, []string{"Private"})
	body := strings.Join(out, "\n")

	if !strings.Contains(body, "# Top") || !strings.Contains(body, "visible") {
		t.Errorf("shallower header did not end skip: %q", body)
	}
}

func TestFilterBlacklistMatchesAtAnyLevel(t *testing.T) {
	// The header's own decision is evaluated before the level updates, so a
	// deeper blacklisted header inside a kept section still triggers.
	input := "# Keep\nok\n## Private\nsecret\n## Also\nfine"

	out, _ := runFilter(t, input, []string{"Private"})
	body := strings.Join(out, "\n")

	if strings.Contains(body, "secret") {
		t.Errorf("nested blacklisted section leaked: %q", body)
	}
	for _, want := range []string{"ok", "## Also", "fine"} {
		if !strings.Contains(body, want) {
			t.Errorf("lost %q: %q", want, body)
		}
	}
}

func TestFilterSymbolOnlyTokensAreNotTags(t *testing.T) {
	input := "text #--- more #... end #real"

	out, got := runFilter(t, input, nil)

	if !reflect.DeepEqual(got, []string{"real"}) {
		t.Errorf("tags = %v, want [real]", got)
	}
	body := strings.Join(out, "\n")
	if !strings.Contains(body, "#---") || !strings.Contains(body, "#...") {
		t.Errorf("symbol-only tokens should stay in the line: %q", body)
	}
	if strings.Contains(body, "#real") {
		t.Errorf("accepted tag not stripped: %q", body)
	}
}

func TestFilterDropsLineEmptiedByStripping(t *testing.T) {
	input := "before\n  #only\nafter"

	out, got := runFilter(t, input, nil)

	if !reflect.DeepEqual(got, []string{"only"}) {
		t.Errorf("tags = %v, want [only]", got)
	}
	if !reflect.DeepEqual(out, []string{"before", "after"}) {
		t.Errorf("emptied line not dropped: %v", out)
	}
}

func TestFilterBracketTagList(t *testing.T) {
	input := "tags:\n[\"a\", b]\nplain"

	out, got := runFilter(t, input, nil)

	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", got)
	}
	if !reflect.DeepEqual(out, []string{"plain"}) {
		t.Errorf("tag list lines leaked: %v", out)
	}
}

func TestFilterTagSectionClosesAtNonListLine(t *testing.T) {
	input := "tags:\n- one\nnot a tag\n- dash line stays"

	out, got := runFilter(t, input, nil)

	if !reflect.DeepEqual(got, []string{"one"}) {
		t.Errorf("tags = %v, want [one]", got)
	}
	want := []string{"not a tag", "- dash line stays"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("body = %v, want %v", out, want)
	}
}

func TestFilterQuotedListItems(t *testing.T) {
	input := "tags:\n- \"quoted\"\n- 'single'\n- ---"

	_, got := runFilter(t, input, nil)

	if !reflect.DeepEqual(got, []string{"quoted", "single"}) {
		t.Errorf("tags = %v, want [quoted single]", got)
	}
}

// Running the filter over already-filtered output changes nothing.
func TestFilterIsIdempotent(t *testing.T) {
	input := "# Title\nHello #draft world\ntags:\n- misc\nplain line"

	first, _ := runFilter(t, input, nil)
	second, secondTags := runFilter(t, strings.Join(first, "\n"), nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed output:\nfirst:  %v\nsecond: %v", first, second)
	}
	if len(secondTags) != 0 {
		t.Errorf("second pass extracted tags: %v", secondTags)
	}
}

func TestFilterPreservesIndentation(t *testing.T) {
	input := "    indented code"

	out, _ := runFilter(t, input, nil)

	if !reflect.DeepEqual(out, []string{"    indented code"}) {
		t.Errorf("indentation lost: %v", out)
	}
}
