package assets

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/mkarppi/verso/internal/apperr"
	"github.com/mkarppi/verso/internal/config"
	"github.com/mkarppi/verso/internal/fileutil"
	"github.com/mkarppi/verso/internal/vault"
)

// Relocator copies resolved assets into the site's static tree and builds
// the markdown reference string pointing back at them.
//
// The emitted reference always starts with a fixed "../../" prefix. It
// encodes the Hugo routing convention content/<section>/<page>/ -> static/
// and is not recomputed from the actual directory depth.
type Relocator struct {
	vault *vault.Vault
	cfg   config.Site
}

// NewRelocator creates a Relocator for the given vault and site config.
func NewRelocator(v *vault.Vault, cfg config.Site) *Relocator {
	return &Relocator{vault: v, cfg: cfg}
}

// Relocate copies the asset into
// <siteRoot>/<staticDir>/<imageDir>/<docBase>/<filename> and returns the
// relative reference string. Only the filename segment is percent-encoded.
func (r *Relocator) Relocate(asset vault.Asset, docBase string) (string, error) {
	src := r.vault.AbsPath(asset.Path)
	dest := filepath.Join(r.cfg.SiteRoot, r.cfg.StaticDir, r.cfg.ImageDir, docBase, asset.Name)

	if err := r.copy(src, dest, asset.Ext); err != nil {
		return "", apperr.NewCopyError(asset.Path, dest, err)
	}

	ref := "../../" + path.Join(r.cfg.ImageDir, docBase) + "/" + fileutil.EncodeFilename(asset.Name)
	return ref, nil
}

// copy performs a plain byte copy, or a bounded-width re-encode when
// MaxWidth is set and the format is a raster one imaging can decode.
func (r *Relocator) copy(src, dest, ext string) error {
	if r.cfg.MaxWidth <= 0 || !resizable(ext) {
		return fileutil.CopyFile(src, dest)
	}

	img, err := imaging.Open(src)
	if err != nil {
		// Not decodable (or corrupt header): fall back to a verbatim copy.
		return fileutil.CopyFile(src, dest)
	}
	if img.Bounds().Dx() <= r.cfg.MaxWidth {
		return fileutil.CopyFile(src, dest)
	}

	resized := imaging.Resize(img, r.cfg.MaxWidth, 0, imaging.Lanczos)
	if err := fileutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}
	return imaging.Save(resized, dest)
}

// resizable reports whether imaging can decode and re-encode the format.
// SVG and WebP pass through untouched.
func resizable(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return true
	}
	return false
}
