package commands

import (
	"fmt"

	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct{}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	linter := &lint.Linter{Config: cfg}
	findings, err := linter.Run()
	if err != nil {
		return err
	}

	for _, finding := range findings {
		fmt.Println(finding)
	}
	if len(findings) > 0 {
		return errors.New(errors.CategoryValidation, errors.SeverityError,
			fmt.Sprintf("%d problem(s) found", len(findings))).WithExitCode(1)
	}
	return nil
}
