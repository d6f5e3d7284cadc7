package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/extract"
	"git.home.luguber.info/inful/bookbinder/internal/page"
)

// ExtractCmd implements the 'extract' command.
type ExtractCmd struct {
	Name     string `arg:"" help:"Function name, e.g. use_mouse"`
	Category string `short:"C" required:"" help:"Book category the page belongs to"`
	Module   string `short:"m" help:"Source module directory, if the function lives in one"`
	Feature  string `short:"f" help:"Crate feature gating the function"`
	Pin      bool   `help:"Pin the source link to the checkout's HEAD commit"`
	Write    bool   `short:"w" help:"Write the page into the book tree instead of stdout"`
}

func (e *ExtractCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if e.Pin {
		cfg.Demo.PinSourceLinks = true
	}

	rewriter := &extract.LinkRewriter{
		Name:        e.Name,
		Module:      e.Module,
		DocsBaseURL: cfg.Library.DocsBaseURL,
	}
	srcPath := cfg.SourcePath(e.Module, e.Name)
	result, err := extract.New(rewriter).ExtractFile(srcPath)
	if err != nil {
		return errors.Wrap(err, errors.CategoryExtract, errors.SeverityFatal, "extract source file").
			WithContext("path", srcPath)
	}

	demoExists := false
	if _, err := os.Stat(cfg.ExampleDir(e.Name)); err == nil {
		demoExists = true
	}

	meta := page.Metadata{Category: e.Category, Module: e.Module, Feature: e.Feature}
	content := newAssembler(cfg).Assemble(e.Name, meta, result, demoExists)

	if !e.Write {
		fmt.Print(content)
		return nil
	}

	pagePath := filepath.Join(cfg.BookSrcDir(), e.Category, e.Name+".md")
	if err := os.MkdirAll(filepath.Dir(pagePath), 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "create category directory").
			WithContext("path", pagePath)
	}
	if err := os.WriteFile(pagePath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write page").
			WithContext("path", pagePath)
	}
	return nil
}
