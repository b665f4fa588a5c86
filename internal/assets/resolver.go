// Package assets resolves image embed tokens against the vault and
// relocates the matched files into the site's static tree.
package assets

import (
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/mkarppi/verso/internal/apperr"
	"github.com/mkarppi/verso/internal/vault"
)

// recognizedExts lists the file suffixes treated as image assets.
var recognizedExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}

// pastedImageRe matches Obsidian's default name for pasted screenshots:
// "Pasted image" followed by a 14-digit timestamp and an image extension.
var pastedImageRe = regexp.MustCompile(`^Pasted image \d{14}\.(?i:jpe?g|png|gif|bmp|svg|webp)$`)

// RecognizedExt reports whether ext (with leading dot) is an image extension.
func RecognizedExt(ext string) bool {
	for _, e := range recognizedExts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Resolver locates the vault asset referenced by an embed token. Matching
// runs in four stages, strict priority order, stopping at the first hit:
// configured search-path probe, vault-root fallback, global fuzzy scan,
// pasted-image heuristic.
type Resolver struct {
	vault      *vault.Vault
	searchDirs []string
}

// NewResolver creates a Resolver over the given vault. searchDirs keeps the
// user-configured order.
func NewResolver(v *vault.Vault, searchDirs []string) *Resolver {
	return &Resolver{vault: v, searchDirs: searchDirs}
}

// Resolve maps an embed token to a vault asset, or returns a NotFoundError
// once all stages are exhausted.
func (r *Resolver) Resolve(token string) (vault.Asset, error) {
	base, probeName := splitToken(token)

	// Stage 1: configured search directories, user order.
	for _, dir := range r.searchDirs {
		if asset, ok := r.probe(path.Join(dir, probeName)); ok {
			return asset, nil
		}
		for _, ext := range recognizedExts {
			if asset, ok := r.probe(path.Join(dir, base+ext)); ok {
				return asset, nil
			}
		}
	}

	// Stage 2: bare token at the vault root.
	if asset, ok := r.probe(probeName); ok {
		return asset, nil
	}

	// Stage 3: global fuzzy scan in enumeration order. The whole library is
	// re-enumerated per unresolved token; scan order is the tie-break when
	// several assets match.
	all, err := r.vault.Assets()
	if err != nil {
		return vault.Asset{}, err
	}
	for _, asset := range all {
		if !RecognizedExt(asset.Ext) {
			continue
		}
		if fuzzyMatch(asset, token, base) {
			return asset, nil
		}
	}

	// Stage 4: pasted-image heuristic.
	if pastedImageRe.MatchString(token) {
		for _, asset := range all {
			if asset.Name == token {
				return asset, nil
			}
		}
		for _, asset := range all {
			if RecognizedExt(asset.Ext) && strings.Contains(asset.Name, "Pasted image") {
				// Any pasted screenshot in the vault can win here; the
				// substitute is logged so wrong attachments stay diagnosable.
				slog.Warn("Pasted image matched by name fragment only",
					"token", token, "asset", asset.Path)
				return asset, nil
			}
		}
	}

	return vault.Asset{}, apperr.NewNotFoundError(token)
}

// splitToken derives the matching base name and the path-construction name
// from a token. Tokens without a recognized extension assume .jpg for path
// probes while the bare name drives matching.
func splitToken(token string) (base, probeName string) {
	ext := path.Ext(token)
	if RecognizedExt(ext) {
		return strings.TrimSuffix(token, ext), token
	}
	return token, token + ".jpg"
}

// probe accepts a candidate relative path when a file exists there and its
// extension is a recognized image extension.
func (r *Resolver) probe(rel string) (vault.Asset, bool) {
	asset, ok := r.vault.Resolve(rel)
	if !ok || !RecognizedExt(asset.Ext) {
		return vault.Asset{}, false
	}
	return asset, true
}

func fuzzyMatch(asset vault.Asset, token, base string) bool {
	if asset.Name == token || asset.Base == base {
		return true
	}
	stripped := strings.ReplaceAll(token, " ", "")
	if strings.Contains(asset.Name, base) && strings.Contains(asset.Name, stripped) {
		return true
	}
	lowerName := strings.ToLower(asset.Name)
	lowerToken := strings.ToLower(token)
	return strings.Contains(lowerName, lowerToken) || strings.Contains(lowerToken, lowerName)
}
