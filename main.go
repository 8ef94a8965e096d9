package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"card-auction/db/migrations"
	auction "card-auction/internal/auctionService"
	"card-auction/internal/jobs"
	"card-auction/internal/repository"
	"card-auction/internal/reputation"
	"card-auction/internal/scheduler"
	"card-auction/internal/server"
	"card-auction/utils"
)

func main() {
	connString := os.Getenv("POSTGRES_CONN")
	if connString == "" {
		utils.Fatal("POSTGRES_CONN env variable is not set", nil)
	}

	dbConn, err := sqlx.Connect("postgres", connString)
	if err != nil {
		utils.Fatal("cannot connect to database", map[string]any{"error": err.Error()})
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn); err != nil {
		utils.Fatal("cannot apply migrations", map[string]any{"error": err.Error()})
	}

	repo := repository.NewPostgresRepo(dbConn)
	auctionSvc := auction.NewAuctionService(repo, repo)
	repEngine := reputation.NewEngine(repo)
	sweeper := jobs.NewSweeper(repo, envDuration("RELIST_DEFAULT_DELAY", 10*time.Minute))

	if os.Getenv("DISABLE_JOBS") == "" {
		sched := scheduler.New()
		registerJobs(sched, sweeper, repEngine)
		sched.Start(context.Background())
		defer sched.Stop()
	} else {
		utils.Warn("periodic jobs are disabled", nil)
	}

	router := server.SetupRouter(auctionSvc, repEngine)

	port := getPort()
	utils.Info("starting auction server", map[string]any{"addr": port})
	if err := router.Run(port); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// registerJobs wires the periodic sweeps on independent cadences. Each task
// owns its reentrancy guard inside the scheduler; a slow run only skips its
// own next tick.
func registerJobs(sched *scheduler.Scheduler, sweeper *jobs.Sweeper, repEngine *reputation.Engine) {
	sched.Register("auction-activate", envDuration("ACTIVATE_INTERVAL", 15*time.Second), func(ctx context.Context) {
		n, err := sweeper.ActivateScheduledAuctions(ctx)
		if err != nil {
			utils.Error("auction-activate failed", map[string]any{"error": err.Error()})
			return
		}
		if n > 0 {
			utils.Info("auctions activated", map[string]any{"count": n})
		}
	})

	sched.Register("auction-close", envDuration("CLOSE_INTERVAL", 30*time.Second), func(ctx context.Context) {
		outcomes, err := sweeper.CloseEndedAuctions(ctx)
		logSweep("auction-close", outcomes, err)
	})

	sched.Register("deal-relist", envDuration("RELIST_INTERVAL", 5*time.Minute), func(ctx context.Context) {
		outcomes, err := sweeper.AutoRelistUnpaidAuctions(ctx)
		logSweep("deal-relist", outcomes, err)
	})

	sched.Register("reputation-recalc", envDuration("REPUTATION_INTERVAL", 24*time.Hour), func(ctx context.Context) {
		n, err := repEngine.Recalculate(ctx)
		if err != nil {
			utils.Error("reputation-recalc failed", map[string]any{"error": err.Error()})
			return
		}
		utils.Info("reputation recalculated", map[string]any{"users": n})
	})
}

// logSweep reports per-item outcomes: failed rows are logged and left for
// the next tick, they never abort their siblings.
func logSweep(job string, outcomes []jobs.ItemOutcome, err error) {
	if err != nil {
		utils.Error(job+" failed", map[string]any{"error": err.Error()})
		return
	}
	failed := jobs.Failed(outcomes)
	for _, o := range failed {
		utils.Warn(job+": item failed, will retry next tick", map[string]any{
			"id":    o.ID,
			"error": o.Err.Error(),
		})
	}
	if len(outcomes) > 0 {
		utils.Info(job+" completed", map[string]any{
			"processed": len(outcomes),
			"failed":    len(failed),
		})
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

// envDuration parses a duration env var, falling back to def.
func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		utils.Warn("invalid duration env var, using default", map[string]any{
			"var":     key,
			"value":   raw,
			"default": def.String(),
		})
		return def
	}
	return d
}
