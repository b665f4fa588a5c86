// Package config builds the typed exporter configuration from viper.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Site holds everything the conversion pipeline needs to know about the
// vault and the target site. It is built once per invocation and passed
// explicitly; the pipeline never reads viper or other ambient state.
type Site struct {
	// VaultDir is the root of the note library
	VaultDir string
	// SiteRoot is the root of the Hugo site
	SiteRoot string
	// ContentDir is the subdirectory under SiteRoot where documents land
	ContentDir string
	// StaticDir is the static asset subdirectory under SiteRoot
	StaticDir string
	// ImageDir is the image subdirectory under StaticDir
	ImageDir string
	// Blacklist lists header texts whose sections are dropped from output
	Blacklist []string
	// SearchDirs is the ordered list of vault directories probed for images
	SearchDirs []string
	// Overwrite controls whether existing documents are overwritten
	Overwrite bool
	// MaxWidth bounds the width of relocated raster images (0 = keep original)
	MaxWidth int
	// ExportLog enables the SQLite export log
	ExportLog bool
	// ExportDB is the path to the export log database file
	ExportDB string
}

// SetDefaults registers the configuration defaults with viper.
func SetDefaults() {
	viper.SetDefault("vaultdir", ".")
	viper.SetDefault("siteroot", "./site")
	viper.SetDefault("contentdir", filepath.Join("content", "posts"))
	viper.SetDefault("staticdir", "static")
	viper.SetDefault("imagedir", "img")
	viper.SetDefault("blacklist", []string{})
	viper.SetDefault("searchdirs", []string{"attachments"})
	viper.SetDefault("overwritefiles", false)
	viper.SetDefault("maxwidth", 0)
	viper.SetDefault("exportlog.enabled", true)
	viper.SetDefault("exportlog.dbfile", "./verso.db")
}

// Load snapshots the current viper state into a Site value.
func Load() Site {
	return Site{
		VaultDir:   viper.GetString("vaultdir"),
		SiteRoot:   viper.GetString("siteroot"),
		ContentDir: viper.GetString("contentdir"),
		StaticDir:  viper.GetString("staticdir"),
		ImageDir:   viper.GetString("imagedir"),
		Blacklist:  viper.GetStringSlice("blacklist"),
		SearchDirs: viper.GetStringSlice("searchdirs"),
		Overwrite:  viper.GetBool("overwritefiles"),
		MaxWidth:   viper.GetInt("maxwidth"),
		ExportLog:  viper.GetBool("exportlog.enabled"),
		ExportDB:   viper.GetString("exportlog.dbfile"),
	}
}
