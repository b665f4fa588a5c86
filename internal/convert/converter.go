// Package convert turns a single vault note into a Hugo-ready document:
// embed substitution, tag extraction with header filtering, and front-matter
// merging, in that order.
package convert

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/mkarppi/verso/internal/assets"
	"github.com/mkarppi/verso/internal/body"
	"github.com/mkarppi/verso/internal/config"
	"github.com/mkarppi/verso/internal/fileutil"
	"github.com/mkarppi/verso/internal/frontmatter"
	"github.com/mkarppi/verso/internal/tags"
	"github.com/mkarppi/verso/internal/vault"
)

// embedRe matches wiki-style image embeds: ![[name]], optionally with an
// extension inside the brackets.
var embedRe = regexp.MustCompile(`!\[\[([^\[\]]+)\]\]`)

// Result is the outcome of converting one document.
type Result struct {
	// Text is the final document: front matter, blank separator, body
	Text string
	// Images counts the assets relocated for this document
	Images int
	// Errors lists per-image failures; they do not fail the conversion
	Errors []string
}

// Converter sequences the conversion pipeline for one vault.
type Converter struct {
	vault     *vault.Vault
	resolver  *assets.Resolver
	relocator *assets.Relocator
	cfg       config.Site

	// Now is the conversion timestamp source, overridable in tests.
	Now func() time.Time
}

// New creates a Converter bound to a vault and site configuration.
func New(v *vault.Vault, cfg config.Site) *Converter {
	return &Converter{
		vault:     v,
		resolver:  assets.NewResolver(v, cfg.SearchDirs),
		relocator: assets.NewRelocator(v, cfg),
		cfg:       cfg,
		Now:       time.Now,
	}
}

// Convert transforms the raw note text into the final document. noteName is
// the note's file name; the title is the name without extension and also
// names the per-document asset directory.
func (c *Converter) Convert(noteName, raw string) *Result {
	title := strings.TrimSuffix(path.Base(noteName), path.Ext(noteName))
	docBase := fileutil.SanitizeFilename(title)
	res := &Result{}

	// (a) Resolve and relocate embeds in textual order. Unresolved embeds
	// keep their original form and are recorded as errors.
	substituted := embedRe.ReplaceAllStringFunc(raw, func(match string) string {
		token := strings.TrimSpace(embedRe.FindStringSubmatch(match)[1])
		asset, err := c.resolver.Resolve(token)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			return match
		}
		ref, err := c.relocator.Relocate(asset, docBase)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			return match
		}
		res.Images++
		return fmt.Sprintf("![%s](%s)", token, ref)
	})

	// (b)+(c) Split off any existing front matter, then filter the body.
	block, bodyText := frontmatter.Detect(substituted)
	set := tags.NewSet()
	lines := body.Filter(strings.Split(bodyText, "\n"), c.cfg.Blacklist, set)

	merged := frontmatter.Merge(block, title, c.Now().Format(time.RFC3339), set.Slice())

	// (d) Front matter, blank separator, trimmed body.
	res.Text = merged.Render() + "\n" + strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
	return res
}
