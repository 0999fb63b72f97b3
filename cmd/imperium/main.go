// Command imperium runs a headless quarterly campaign from a YAML
// definition, persisting snapshots and reports to SQLite.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/avolkov/imperium/internal/advisor"
	"github.com/avolkov/imperium/internal/config"
	"github.com/avolkov/imperium/internal/engine"
	"github.com/avolkov/imperium/internal/events"
	"github.com/avolkov/imperium/internal/persistence"
	"github.com/avolkov/imperium/internal/scenario"
)

const snapshotName = "latest"

// handoffHandler delegates every intervention panel to the council. The
// headless runner has no player at the other end.
type handoffHandler struct{}

func (handoffHandler) Present(p engine.Panel) (engine.PlayerDecision, error) {
	return engine.PlayerDecision{Kind: engine.DecisionHandoff}, nil
}

func main() {
	var (
		campaignPath = flag.String("campaign", "campaign.yaml", "campaign definition file")
		dbPath       = flag.String("db", "data/imperium.db", "sqlite database path")
		quarters     = flag.Int("quarters", 0, "override number of quarters to run (0 = campaign setting)")
		fresh        = flag.Bool("fresh", false, "ignore any saved snapshot and start over")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*campaignPath, *dbPath, *quarters, *fresh); err != nil {
		slog.Error("campaign aborted", "error", err)
		os.Exit(1)
	}
}

func run(campaignPath, dbPath string, quarterOverride int, fresh bool) error {
	camp, err := config.Load(campaignPath)
	if err != nil {
		return err
	}
	if quarterOverride > 0 {
		camp.Quarters = quarterOverride
	}
	slog.Info("campaign loaded",
		"name", camp.Name,
		"seed", camp.Seed,
		"quarters", camp.Quarters,
		"advisor", camp.Advisor,
		"control_mode", camp.ControlMode,
	)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	catalog, err := events.NewCatalog(events.DefaultTemplates())
	if err != nil {
		return fmt.Errorf("event catalog: %w", err)
	}
	policy, err := advisor.NewRegistry().Get(camp.Advisor)
	if err != nil {
		return err
	}
	engCfg := scenario.EngineConfig(camp)

	sess, err := openSession(camp, engCfg, catalog, policy, db, fresh)
	if err != nil {
		return err
	}
	sess.SetLogSink(db)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	handler := handoffHandler{}
	for !sess.Done() {
		select {
		case sig := <-stop:
			slog.Info("signal received, saving and exiting", "signal", sig)
			return sess.SaveTo(db, snapshotName)
		default:
		}

		report, err := sess.AdvanceQuarter(handler)
		if err != nil {
			if errors.Is(err, engine.ErrCampaignOver) {
				break
			}
			return err
		}
		if err := db.SaveReport(report); err != nil {
			slog.Warn("report archive failed", "quarter", report.Quarter, "error", err)
		}
		slog.Info("quarter complete",
			"quarter", report.Quarter,
			"income", fmt.Sprintf("%.1f", report.TotalIncome),
			"spend", fmt.Sprintf("%.1f", report.TotalSpend),
			"treasury", fmt.Sprintf("%.1f", report.Treasury.Gold),
			"stability", fmt.Sprintf("%.1f", report.KPI.Stability.Value),
			"security", fmt.Sprintf("%.1f", report.KPI.SecurityIndex.Value),
			"active_events", len(report.ActiveEvents),
			"outcomes", len(report.EventOutcomes),
		)
	}

	if err := sess.SaveTo(db, snapshotName); err != nil {
		return err
	}
	if err := db.SaveMeta("campaign", camp.Name); err != nil {
		return err
	}

	avg := sess.Summary()
	slog.Info("campaign finished",
		"quarters", sess.Quarter(),
		"avg_stability", fmt.Sprintf("%.1f", avg.Stability),
		"avg_growth", fmt.Sprintf("%.1f", avg.EconomicGrowth),
		"avg_security", fmt.Sprintf("%.1f", avg.SecurityIndex),
		"avg_crises", fmt.Sprintf("%.2f", avg.ActiveCrises),
	)
	return nil
}

// openSession restores from the latest snapshot when one exists, otherwise
// builds a fresh scenario from the campaign definition.
func openSession(camp config.Campaign, cfg engine.Config, catalog *events.Catalog, policy advisor.Policy, db *persistence.DB, fresh bool) (*engine.Session, error) {
	if !fresh {
		blob, err := db.ReadBlob(snapshotName)
		switch {
		case err == nil:
			sess, err := engine.FromState(cfg, catalog, policy, blob)
			if err != nil {
				return nil, fmt.Errorf("resume from snapshot: %w", err)
			}
			slog.Info("resumed from snapshot", "quarter", sess.Quarter())
			return sess, nil
		case errors.Is(err, persistence.ErrNotFound):
			// First run.
		default:
			return nil, err
		}
	}

	st, err := scenario.Build(camp)
	if err != nil {
		return nil, err
	}
	sess, err := engine.NewSession(cfg, st, catalog, policy)
	if err != nil {
		return nil, err
	}
	slog.Info("new campaign started", "regions", len(camp.Regions), "estates", len(camp.Estates))
	return sess, nil
}
