package commands

import (
	"git.home.luguber.info/inful/bookbinder/internal/demo"
	"git.home.luguber.info/inful/bookbinder/internal/splice"
)

// PostbuildCmd implements the 'postbuild' command.
type PostbuildCmd struct {
	Filter string `arg:"" optional:"" help:"Only process pages whose file name contains this substring"`
}

func (p *PostbuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	runner := &splice.Runner{
		Config: cfg,
		Builder: &demo.Builder{
			Command: cfg.Demo.BuildCommand,
			DistDir: cfg.Demo.DistDir,
		},
		Filter: p.Filter,
	}
	return runner.Run()
}
