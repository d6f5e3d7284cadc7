package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/gitinfo"
	"git.home.luguber.info/inful/bookbinder/internal/page"
)

// Global context passed to subcommands.
type Global struct {
	Logger  *slog.Logger
	Verbose bool
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"bookbinder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Extract   ExtractCmd   `cmd:"" help:"Generate the book page for one documented function"`
	Postbuild PostbuildCmd `cmd:"" help:"Build demo projects and splice them into the rendered book"`
	Release   ReleaseCmd   `cmd:"" help:"Stamp manifest versions into the compatibility table and changelog"`
	New       NewCmd       `cmd:"" help:"Scaffold the bookkeeping entries for a new function"`
	Overview  OverviewCmd  `cmd:"" help:"Print the function overview for one category"`
	Badge     BadgeCmd     `cmd:"" help:"Update the README function-count badge"`
	Lint      LintCmd      `cmd:"" help:"Check book pages for unclosed fences and dangling links"`
	Watch     WatchCmd     `cmd:"" help:"Regenerate book pages as library sources change"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads and validates the configuration file named by the root flags.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "load configuration").
			WithContext("path", root.Config)
	}
	return cfg, nil
}

// newAssembler builds a page assembler from the configuration, pinning
// source links to the checkout's HEAD when configured.
func newAssembler(cfg *config.Config) *page.Assembler {
	a := &page.Assembler{
		RepoURL:     cfg.Library.RepoURL,
		DocsBaseURL: cfg.Library.DocsBaseURL,
		SrcExt:      cfg.Library.SrcExt,
	}
	if cfg.Demo.PinSourceLinks {
		if ref, err := gitinfo.HeadShort(cfg.Library.Root); err != nil {
			slog.Warn("Cannot pin source links, falling back to default branch", "error", err)
		} else {
			a.SourceRef = ref
		}
	}
	return a
}
