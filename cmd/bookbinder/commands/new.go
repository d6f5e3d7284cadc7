package commands

import (
	"git.home.luguber.info/inful/bookbinder/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Name     string `arg:"" help:"Function name, e.g. use_mouse"`
	Category string `arg:"" help:"Book category for the table of contents entry"`
	Module   string `short:"m" help:"Source module directory the function belongs to"`
	Feature  string `short:"f" help:"Crate feature gating the function"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	s := &scaffold.Scaffolder{Config: cfg}
	return s.Run(scaffold.Params{
		FunctionName: n.Name,
		Category:     n.Category,
		Module:       n.Module,
		Feature:      n.Feature,
	})
}
