package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
//
// A BookbinderError carrying an explicit ExitCode wins over the category
// mapping; this is how a failed demo build propagates the build tool's own
// exit code.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if be, ok := err.(*BookbinderError); ok {
		if be.ExitCode != 0 {
			return be.ExitCode
		}
		return a.exitCodeFromCategory(be)
	}

	return 1
}

func (a *CLIErrorAdapter) exitCodeFromCategory(err *BookbinderError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryExtract, CategoryRelease, CategoryScaffold:
		return 1 // Tool-level error
	case CategoryBuild, CategorySplice, CategoryFileSystem:
		return 11 // Build error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BookbinderError); ok {
		if a.verbose {
			return be.Error()
		}
		switch be.Category {
		case CategoryConfig, CategoryValidation:
			return be.Message
		default:
			return fmt.Sprintf("%s: %s", be.Category, be.Message)
		}
	}

	return fmt.Sprintf("Error: %v", err)
}

// HandleError processes an error and exits the program with the appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if be, ok := err.(*BookbinderError); ok {
		return be.Category == CategoryInternal || be.Severity == SeverityFatal
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	if be, ok := err.(*BookbinderError); ok {
		level := slog.LevelError
		if be.Severity == SeverityWarning {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
		}
		if be.ExitCode != 0 {
			attrs = append(attrs, slog.Int("exit_code", be.ExitCode))
		}

		a.logger.LogAttrs(nil, level, be.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}
