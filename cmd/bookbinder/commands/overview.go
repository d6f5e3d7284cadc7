package commands

import (
	"fmt"

	"git.home.luguber.info/inful/bookbinder/internal/overview"
)

// OverviewCmd implements the 'overview' command.
type OverviewCmd struct {
	Category string `arg:"" help:"Book category to summarize"`
	Module   string `short:"m" help:"Source module directory holding the category's sources"`
}

func (o *OverviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	g := &overview.Generator{Config: cfg}
	out, err := g.ForCategory(o.Category, o.Module)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// BadgeCmd implements the 'badge' command.
type BadgeCmd struct{}

func (b *BadgeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	return overview.UpdateBadge(cfg)
}
