package days

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/schedule"
)

// WatchCmd reprints the day on a cron schedule until interrupted.
type WatchCmd struct {
	Date  string `arg:"" optional:"" help:"Date to watch." default:"today"`
	Every string `help:"Refresh schedule in cron syntax (defaults to the config's refresh)."`
}

func (c *WatchCmd) spec(ctx *cli.Context) string {
	if c.Every != "" {
		return c.Every
	}
	if ctx.Config != nil && ctx.Config.Refresh != "" {
		return ctx.Config.Refresh
	}
	return constants.DefaultRefreshSpec
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("signal received, stopping watch", "signal", sig.String())
			cancel()
		case <-runCtx.Done():
		}
	}()

	return c.watch(runCtx, ctx)
}

// watch renders once, then on every tick while the date is today. It
// returns after runCtx is done and the running tick has finished.
func (c *WatchCmd) watch(runCtx context.Context, ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	spec := c.spec(ctx)
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	render := func() {
		day, err := ctx.Store.GetDay(date)
		if err != nil {
			logger.Error("watch refresh failed", "date", date, "error", err)
			return
		}
		ctx.Println()
		ctx.PrintDay(day, schedule.Summarize(day, ctx.Store.Clock()), false)
	}
	render()

	if date != ctx.Store.Today() {
		ctx.Println()
		ctx.Println("Not today, nothing to refresh. Press Ctrl+C to exit.")
	}

	sched := cron.New()
	if _, err := sched.AddFunc(spec, func() {
		if date != ctx.Store.Today() {
			logger.Debug("skipping refresh, watched date is not today", "date", date)
			return
		}
		render()
	}); err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}

	sched.Start()
	logger.Debug("watch started", "date", date, "spec", spec)
	<-runCtx.Done()
	<-sched.Stop().Done()
	logger.Debug("watch stopped", "date", date)
	return nil
}
