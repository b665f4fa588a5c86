package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/mkarppi/verso/internal/apperr"
	"github.com/mkarppi/verso/internal/config"
	"github.com/mkarppi/verso/internal/export"
	"github.com/mkarppi/verso/internal/tui"
	"github.com/mkarppi/verso/internal/vault"
)

var (
	runExport   = export.Run
	selectNotes = tui.SelectNotes
)

// CLI represents the complete command structure for the verso application
type CLI struct {
	// Global flags
	Overwrite bool   `help:"Overwrite existing documents in the site content directory"`
	Vault     string `help:"Path to the vault directory (overrides config)"`
	Site      string `help:"Path to the Hugo site root (overrides config)"`

	// Export log flags
	ExportLog   bool   `help:"Record exports in a SQLite log" default:"true"`
	ExportLogDB string `help:"Path to the export log database file" default:"./verso.db"`

	Export ExportCmd `cmd:"" help:"Convert vault notes into Hugo documents"`
	List   ListCmd   `cmd:"" help:"List the notes in the vault"`
}

// ExportCmd represents the export command
type ExportCmd struct {
	Notes    []string `arg:"" optional:"" help:"Vault-relative note paths to export"`
	All      bool     `help:"Export every note in the vault"`
	Select   bool     `help:"Pick notes interactively"`
	MaxWidth int      `help:"Downscale relocated raster images wider than this many pixels (0 = keep original)"`
}

// ListCmd represents the list command
type ListCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("verso"),
		kong.Description("A tool to export Obsidian-style vault notes into a Hugo site."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("siteroot", "VERSO_SITE_ROOT"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

func updateGlobalConfig(cli *CLI) {
	if cli.Overwrite {
		viper.Set("overwritefiles", true)
	}
	if cli.Vault != "" {
		viper.Set("vaultdir", cli.Vault)
	}
	if cli.Site != "" {
		viper.Set("siteroot", cli.Site)
	}
	viper.Set("exportlog.enabled", cli.ExportLog)
	viper.Set("exportlog.dbfile", cli.ExportLogDB)
}

// Run methods for each command

func (e *ExportCmd) Run() error {
	if e.MaxWidth > 0 {
		viper.Set("maxwidth", e.MaxWidth)
	}
	cfg := config.Load()

	v, err := vault.Open(cfg.VaultDir)
	if err != nil {
		return err
	}

	notes, err := e.resolveSelection(v)
	if err != nil {
		return err
	}
	if notes == nil {
		// Aborted from the picker; nothing to do.
		return nil
	}

	summary, err := runExport(v, cfg, notes)
	if err != nil {
		if apperr.IsNoSelection(err) {
			slog.Info("No notes selected, nothing to export")
			return nil
		}
		return err
	}

	if summary.Failed > 0 || len(summary.Errors) > 0 {
		fmt.Printf("Exported %d/%d notes (%d images, %d skipped, %d failed, %d issues)\n",
			summary.Succeeded, summary.Total, summary.Images,
			summary.Skipped, summary.Failed, len(summary.Errors))
		for _, msg := range summary.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	} else {
		fmt.Printf("Exported %d/%d notes (%d images, %d skipped)\n",
			summary.Succeeded, summary.Total, summary.Images, summary.Skipped)
	}

	return nil
}

// resolveSelection determines the batch: explicit args, the whole vault, or
// the interactive picker. Returns nil when the user aborted.
func (e *ExportCmd) resolveSelection(v *vault.Vault) ([]string, error) {
	if len(e.Notes) > 0 {
		return e.Notes, nil
	}

	all, err := v.Notes()
	if err != nil {
		return nil, err
	}

	if e.All {
		return all, nil
	}

	if e.Select {
		result, err := selectNotes(all)
		if err != nil {
			return nil, fmt.Errorf("note selection failed: %w", err)
		}
		if result.Action != tui.ActionConfirmed {
			slog.Info("Selection aborted")
			return nil, nil
		}
		return result.Notes, nil
	}

	return nil, fmt.Errorf("no notes given (pass note paths, --all, or --select)")
}

func (l *ListCmd) Run() error {
	cfg := config.Load()

	v, err := vault.Open(cfg.VaultDir)
	if err != nil {
		return err
	}

	notes, err := v.Notes()
	if err != nil {
		return err
	}

	for _, note := range notes {
		fmt.Println(note)
	}
	return nil
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
