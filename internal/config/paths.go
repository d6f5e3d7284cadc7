package config

import "path/filepath"

// SourcePath resolves the source file for a documented function.
// The module segment is optional.
func (c *Config) SourcePath(module, name string) string {
	if module != "" {
		return filepath.Join(c.Library.Root, c.Library.SrcDir, module, name+c.Library.SrcExt)
	}
	return filepath.Join(c.Library.Root, c.Library.SrcDir, name+c.Library.SrcExt)
}

// ExampleDir resolves the demo project directory for a function.
func (c *Config) ExampleDir(name string) string {
	return filepath.Join(c.Library.Root, c.Library.ExamplesDir, name)
}

// BookSrcDir resolves the book markdown source tree.
func (c *Config) BookSrcDir() string {
	return filepath.Join(c.Library.Root, c.Book.SrcDir)
}

// BookOutDir resolves the rendered book output tree.
func (c *Config) BookOutDir() string {
	return filepath.Join(c.Library.Root, c.Book.OutDir)
}

// SummaryPath resolves the book's table of contents file.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.Library.Root, c.Book.SummaryFile)
}

// LibPath resolves the crate's root source file.
func (c *Config) LibPath() string {
	return filepath.Join(c.Library.Root, c.Scaffold.LibFile)
}

// WorkspacePath resolves the example workspace manifest.
func (c *Config) WorkspacePath() string {
	return filepath.Join(c.Library.Root, c.Scaffold.WorkspaceFile)
}

// ModFilePath resolves a module's re-export file.
func (c *Config) ModFilePath(module string) string {
	return filepath.Join(c.Library.Root, c.Library.SrcDir, module, "mod"+c.Library.SrcExt)
}

// ManifestPath resolves the crate manifest consumed by the release updater.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Library.Root, c.Release.ManifestFile)
}

// ReadmePath resolves the README carrying the compatibility table.
func (c *Config) ReadmePath() string {
	return filepath.Join(c.Library.Root, c.Release.ReadmeFile)
}

// ChangelogPath resolves the changelog file.
func (c *Config) ChangelogPath() string {
	return filepath.Join(c.Library.Root, c.Release.ChangelogFile)
}
