package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/iamdhruvsharma3/arbitrage/api"
	"github.com/iamdhruvsharma3/arbitrage/config"
	"github.com/iamdhruvsharma3/arbitrage/engine"
	"github.com/iamdhruvsharma3/arbitrage/feed"
	"github.com/iamdhruvsharma3/arbitrage/journal"
	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/metrics"
	"github.com/iamdhruvsharma3/arbitrage/report"
)

func buildLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	log.SetLevel(level)

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

func buildJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SessionsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return journal.Nop{}, nil
	}
}

// buildProvider wires the snapshot source named in the config. The returned
// cleanup stops any background stream reader.
func buildProvider(ctx context.Context, cfg *config.Config, log *logrus.Logger) (feed.Provider, func(), error) {
	meta := cfg.Instrument()
	nop := func() {}

	switch cfg.Feed.Type {
	case "sim":
		return feed.NewSimulator(meta, cfg.Feed.Seed), nop, nil

	case "replay":
		f, err := feed.OpenCSV(cfg.Feed.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open replay file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil

	case "broker":
		bcfg, err := feed.BrokerConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		return feed.NewBrokerClient(bcfg, meta), nop, nil

	case "stream":
		bcfg, err := feed.BrokerConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		maxAge, err := cfg.MaxSnapshotAge()
		if err != nil {
			return nil, nil, fmt.Errorf("feed.max_age: %w", err)
		}

		store := market.NewSnapshotStore()
		stream := feed.NewStream(cfg.Feed.StreamURL, market.SourceLive(bcfg.Name), store, log)

		streamCtx, stop := context.WithCancel(ctx)
		go func() {
			if err := stream.Run(streamCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("ticker stream stopped")
			}
		}()
		return feed.NewStoreProvider(store, maxAge), stop, nil

	default:
		return nil, nil, fmt.Errorf("unknown feed type %q", cfg.Feed.Type)
	}
}

// runSession wires the full bot from config and runs the decision loop until
// the feed drains or the process is signalled.
func runSession(cfg *config.Config, mode engine.Settlement, gated bool) error {
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	j, err := buildJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	rule, err := cfg.ExitRule()
	if err != nil {
		return err
	}
	interval, err := cfg.UpdateInterval()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, cleanup, err := buildProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if gated {
		provider = feed.NewGated(provider, feed.NewQualityGate(cfg.Instrument()))
	}

	promSink := metrics.NewSink()
	sinks := engine.MultiSink{report.NewLogger(log), promSink}

	e := engine.New(cfg.Policy(), rule, mode, j, sinks)

	if cfg.Server.Enabled {
		srv := api.NewServer(e, log, cfg.Server.Addr)
		srv.Metrics = promSink.Handler()
		go func() {
			if err := srv.Start(); err != nil {
				log.WithError(err).Error("status server failed")
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	err = e.Run(ctx, provider, interval)
	printSummary(e.Session())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, feed.ErrExhausted):
		return nil // replay ran to the end
	case errors.Is(err, context.Canceled):
		return nil // operator stop
	default:
		return err
	}
}

func printSummary(s *engine.Session) {
	wins, losses := 0, 0
	for _, p := range s.History() {
		if p.Status != engine.StatusClosed {
			continue
		}
		if p.RealizedPL >= 0 {
			wins++
		} else {
			losses++
		}
	}

	fmt.Println()
	fmt.Println("Session summary")
	fmt.Printf("  Closed trades:   %d (%d wins, %d losses)\n", s.ClosedTrades(), wins, losses)
	fmt.Printf("  Total P&L:       %.2f\n", s.TotalPL())
	fmt.Printf("  Trading enabled: %v\n", s.TradingEnabled())
}
