// Package config loads the bookbinder configuration describing the
// component library checkout and the book tree assembled from it.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Book     BookConfig     `yaml:"book"`
	Release  ReleaseConfig  `yaml:"release"`
	Demo     DemoConfig     `yaml:"demo"`
	Scaffold ScaffoldConfig `yaml:"scaffold"`
}

// LibraryConfig describes the component library checkout being documented.
type LibraryConfig struct {
	// Root of the library checkout. All other library paths are relative to it.
	Root string `yaml:"root"`
	// SrcDir holds one source file per documented function.
	SrcDir string `yaml:"src_dir"`
	// SrcExt is the source file extension including the dot.
	SrcExt string `yaml:"src_ext,omitempty"`
	// ExamplesDir holds one demo project per documented function.
	ExamplesDir string `yaml:"examples_dir"`
	// RepoURL is the base URL of the hosted repository (no trailing slash).
	RepoURL string `yaml:"repo_url"`
	// DocsBaseURL is the base URL of the generated API docs (no trailing slash).
	DocsBaseURL string `yaml:"docs_base_url"`
}

// BookConfig describes the book tree the pages are assembled into.
type BookConfig struct {
	// SrcDir is the book's markdown source tree (one subdirectory per category).
	SrcDir string `yaml:"src_dir"`
	// OutDir is the rendered book output tree the splicer operates on.
	OutDir string `yaml:"out_dir"`
	// SummaryFile is the book's table of contents.
	SummaryFile string `yaml:"summary_file"`
}

// ReleaseConfig describes the artifacts touched by the release doc updater.
type ReleaseConfig struct {
	ManifestFile  string `yaml:"manifest_file"`
	ReadmeFile    string `yaml:"readme_file"`
	ChangelogFile string `yaml:"changelog_file"`
	// FrameworkDependency is the manifest dependency whose version forms the
	// right-hand column of the compatibility table.
	FrameworkDependency string `yaml:"framework_dependency"`
}

// DemoConfig describes how example projects are built and spliced.
type DemoConfig struct {
	// BuildCommand invokes the external demo build tool, e.g. ["trunk", "build", "--release"].
	BuildCommand []string `yaml:"build_command,omitempty"`
	// DistDir is the build output directory inside each example project.
	DistDir string `yaml:"dist_dir,omitempty"`
	// CleanupPrefixes are literal substrings removed from spliced pages so
	// rendered cross-references do not leak internal path syntax.
	CleanupPrefixes []string `yaml:"cleanup_prefixes,omitempty"`
	// PinSourceLinks resolves the library checkout's HEAD commit and pins
	// generated source links to it instead of the default branch.
	PinSourceLinks bool `yaml:"pin_source_links,omitempty"`
}

// ScaffoldConfig describes the anchor lines the scaffold generator keys on.
type ScaffoldConfig struct {
	// LibFile is the crate's root source file carrying the re-exports.
	LibFile string `yaml:"lib_file,omitempty"`
	// WorkspaceFile is the example workspace manifest with the members block.
	WorkspaceFile string `yaml:"workspace_file,omitempty"`
	// ModDeclAnchor is the statement new module declarations are inserted next to.
	ModDeclAnchor string `yaml:"mod_decl_anchor,omitempty"`
	// ReExportAnchor is the statement new re-exports are inserted next to.
	ReExportAnchor string `yaml:"re_export_anchor,omitempty"`
	// ModuleDeclAnchor is the statement new public module declarations follow.
	ModuleDeclAnchor string `yaml:"module_decl_anchor,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Pick up local overrides; absence of a .env file is the normal case.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a configuration matching the conventional library layout.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{
			Root:        ".",
			SrcDir:      "src",
			SrcExt:      ".rs",
			ExamplesDir: "examples",
		},
		Book: BookConfig{
			SrcDir:      "docs/book/src",
			OutDir:      "docs/book/book",
			SummaryFile: "docs/book/src/SUMMARY.md",
		},
		Release: ReleaseConfig{
			ManifestFile:        "Cargo.toml",
			ReadmeFile:          "README.md",
			ChangelogFile:       "CHANGELOG.md",
			FrameworkDependency: "leptos",
		},
		Demo: DemoConfig{
			BuildCommand:    []string{"trunk", "build", "--release"},
			DistDir:         "dist",
			CleanupPrefixes: []string{"leptos_use::", "crate::"},
		},
		Scaffold: ScaffoldConfig{
			LibFile:          "src/lib.rs",
			WorkspaceFile:    "examples/Cargo.toml",
			ModDeclAnchor:    "mod on_click_outside;",
			ReExportAnchor:   "pub use on_click_outside::*;",
			ModuleDeclAnchor: "pub mod utils;",
		},
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Library.SrcExt == "" {
		c.Library.SrcExt = d.Library.SrcExt
	}
	if len(c.Demo.BuildCommand) == 0 {
		c.Demo.BuildCommand = d.Demo.BuildCommand
	}
	if c.Demo.DistDir == "" {
		c.Demo.DistDir = d.Demo.DistDir
	}
	if c.Demo.CleanupPrefixes == nil {
		c.Demo.CleanupPrefixes = d.Demo.CleanupPrefixes
	}
	if c.Scaffold.LibFile == "" {
		c.Scaffold.LibFile = d.Scaffold.LibFile
	}
	if c.Scaffold.WorkspaceFile == "" {
		c.Scaffold.WorkspaceFile = d.Scaffold.WorkspaceFile
	}
	if c.Scaffold.ModDeclAnchor == "" {
		c.Scaffold.ModDeclAnchor = d.Scaffold.ModDeclAnchor
	}
	if c.Scaffold.ReExportAnchor == "" {
		c.Scaffold.ReExportAnchor = d.Scaffold.ReExportAnchor
	}
	if c.Scaffold.ModuleDeclAnchor == "" {
		c.Scaffold.ModuleDeclAnchor = d.Scaffold.ModuleDeclAnchor
	}
}

// Validate checks the configuration for missing required fields.
func (c *Config) Validate() error {
	if c.Library.SrcDir == "" {
		return fmt.Errorf("library.src_dir must be set")
	}
	if c.Library.ExamplesDir == "" {
		return fmt.Errorf("library.examples_dir must be set")
	}
	if c.Book.SrcDir == "" {
		return fmt.Errorf("book.src_dir must be set")
	}
	if c.Book.OutDir == "" {
		return fmt.Errorf("book.out_dir must be set")
	}
	return nil
}
