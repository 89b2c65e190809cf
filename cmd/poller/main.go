package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alwanly/item-poller/internal/config"
	"github.com/Alwanly/item-poller/internal/supervisor"
	"github.com/Alwanly/item-poller/pkg/logger"
	"github.com/Alwanly/item-poller/pkg/poll"
	"golang.org/x/sync/errgroup"
)

func main() {
	log, err := logger.NewLoggerFromEnv("poller")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting poller service")

	rt, err := config.LoadRuntime()
	if err != nil {
		log.WithError(err).Fatal("failed to load runtime configuration")
	}

	snap, err := config.Load(rt.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration", logger.String(logger.FieldConfigPath, rt.ConfigPath))
	}

	defaults := poll.DefaultConfig()
	pollCfg := poll.Config{
		Flag:     snap.FlagOr(defaults.Flag),
		Interval: snap.IntervalOr(defaults.Interval),
	}

	log.Info("configuration loaded",
		logger.String(logger.FieldConfigPath, rt.ConfigPath),
		logger.Bool(logger.FieldFlag, pollCfg.Flag),
		logger.Duration(logger.FieldInterval, pollCfg.Interval),
		logger.Bool("attr3_present", snap.Attr3 != nil),
		logger.Int("max_restarts", rt.MaxRestarts),
	)

	p := poll.NewPoller(pollCfg, poll.StaticLister{}, poll.DummyProcessor{}, log.Component("poller"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return supervisor.Run(gCtx, p, rt, log)
	})

	// First signal raises the stop signal and lets the current iteration
	// finish. A second one cancels the context and aborts the wait.
	g.Go(func() error {
		sigCh := make(chan os.Signal, 2)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			log.Info("received shutdown signal", logger.String("signal", sig.String()))
			if err := p.Stop(); err != nil {
				log.WithError(err).Error("error stopping poller")
			}
		case <-done:
			return nil
		}

		select {
		case sig := <-sigCh:
			log.Info("received second signal, aborting", logger.String("signal", sig.String()))
			cancel()
		case <-done:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("poller aborted")
			return
		}
		log.WithError(err).Error("poller stopped with error")
		log.Sync()
		os.Exit(1)
	}

	log.Info("poller stopped gracefully")
}
