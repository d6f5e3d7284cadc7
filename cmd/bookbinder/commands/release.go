package commands

import (
	"time"

	"git.home.luguber.info/inful/bookbinder/internal/release"
)

// ReleaseCmd implements the 'release' command.
type ReleaseCmd struct {
	Check bool `help:"Verify the release docs are current without writing; non-zero exit on drift"`
}

func (r *ReleaseCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	updater := &release.Updater{Config: cfg}
	if r.Check {
		return updater.Check(time.Now())
	}
	return updater.Apply(time.Now())
}
