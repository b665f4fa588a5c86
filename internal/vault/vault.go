// Package vault provides read access to an Obsidian-style note library:
// note listing, note content, and asset enumeration.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Asset identifies a single file in the vault.
type Asset struct {
	// Path is the vault-relative path, slash-separated
	Path string
	// Name is the file name including extension
	Name string
	// Base is the file name without extension
	Base string
	// Ext is the extension including the leading dot, original case
	Ext string
}

// Vault is a read-only view over a note library rooted at a directory.
type Vault struct {
	root string
}

// Open validates the root directory and returns a Vault.
func Open(root string) (*Vault, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root is not a directory: %s", root)
	}
	return &Vault{root: root}, nil
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// AbsPath returns the absolute filesystem path for a vault-relative path.
func (v *Vault) AbsPath(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(rel))
}

// ReadNote reads the full text of a note by its vault-relative path.
func (v *Vault) ReadNote(rel string) (string, error) {
	content, err := os.ReadFile(v.AbsPath(rel))
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(content), nil
}

// Notes lists the vault-relative paths of all markdown notes.
// WalkDir visits entries in lexical order, so the listing is deterministic.
func (v *Vault) Notes() ([]string, error) {
	var notes []string
	err := v.walk(func(rel string, d fs.DirEntry) {
		if strings.EqualFold(path.Ext(rel), ".md") {
			notes = append(notes, rel)
		}
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Assets enumerates every non-note file in the vault, in lexical walk order.
// The enumeration order is the tie-break for fuzzy image resolution, so it
// must stay stable between calls.
func (v *Vault) Assets() ([]Asset, error) {
	var assets []Asset
	err := v.walk(func(rel string, d fs.DirEntry) {
		if strings.EqualFold(path.Ext(rel), ".md") {
			return
		}
		assets = append(assets, newAsset(rel))
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// Resolve maps a path-like string to an asset if a file exists there.
func (v *Vault) Resolve(rel string) (Asset, bool) {
	info, err := os.Stat(v.AbsPath(rel))
	if err != nil || info.IsDir() {
		return Asset{}, false
	}
	return newAsset(path.Clean(filepath.ToSlash(rel))), true
}

func (v *Vault) walk(visit func(rel string, d fs.DirEntry)) error {
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories like .obsidian and .trash hold vault
			// internals, not content.
			if p != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		visit(filepath.ToSlash(rel), d)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk vault: %w", err)
	}
	return nil
}

func newAsset(rel string) Asset {
	name := path.Base(rel)
	ext := path.Ext(name)
	return Asset{
		Path: rel,
		Name: name,
		Base: strings.TrimSuffix(name, ext),
		Ext:  ext,
	}
}
