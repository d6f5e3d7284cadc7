package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/bookbinder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct{}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := &watch.Watcher{Config: cfg, Assembler: newAssembler(cfg)}
	return watcher.Run(ctx)
}
