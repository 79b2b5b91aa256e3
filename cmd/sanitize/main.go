// Command sanitize is the offline consistency-repair pass. It removes
// rows whose parent no longer exists (login methods without a user,
// child resources and memberships without a conference) and deactivates
// tokens past their expiry. Safe to run at any time; every step is
// idempotent.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/myconference/api/internal/config"
	"github.com/myconference/api/internal/database"
)

func main() {
	var (
		dryRun  = flag.Bool("dry-run", false, "report what would be removed without writing")
		verbose = flag.Bool("verbose", false, "verbose logging")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	start := time.Now()
	slog.Info("sanitation pass starting", "dry_run", *dryRun)

	total := 0
	for _, step := range steps() {
		n, err := step.run(ctx, db, *dryRun)
		if err != nil {
			log.Fatalf("%s failed: %v", step.name, err)
		}
		slog.Debug("step done", "step", step.name, "rows", n)
		total += n
	}

	slog.Info("sanitation pass complete",
		"rows_affected", total,
		"duration_ms", time.Since(start).Milliseconds())
}

type step struct {
	name string
	// count finds the affected rows, mutate removes or fixes them. The
	// WHERE clauses must match exactly.
	count  string
	mutate string
}

func (s step) run(ctx context.Context, db *sql.DB, dryRun bool) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, s.count).Scan(&n); err != nil {
		return 0, err
	}
	if n == 0 || dryRun {
		return n, nil
	}
	if _, err := db.ExecContext(ctx, s.mutate); err != nil {
		return 0, err
	}
	return n, nil
}

func steps() []step {
	// Orphaned child rows reference a conference that was deleted before
	// the cascade covered its table, or mid-crash.
	childTables := []string{
		"documents", "venues", "announcements", "organizers",
		"speakers", "agenda_events", "invite_codes", "conference_users",
	}

	out := []step{
		{
			name:   "orphaned login methods",
			count:  "SELECT COUNT(*) FROM login_methods lm LEFT JOIN users u ON u.id = lm.user_id WHERE u.id IS NULL",
			mutate: "DELETE lm FROM login_methods lm LEFT JOIN users u ON u.id = lm.user_id WHERE u.id IS NULL",
		},
		{
			name:   "memberships of deleted users",
			count:  "SELECT COUNT(*) FROM conference_users cu LEFT JOIN users u ON u.id = cu.user_id WHERE u.id IS NULL",
			mutate: "DELETE cu FROM conference_users cu LEFT JOIN users u ON u.id = cu.user_id WHERE u.id IS NULL",
		},
	}
	for _, t := range childTables {
		out = append(out, step{
			name:   "orphaned " + t,
			count:  "SELECT COUNT(*) FROM " + t + " t LEFT JOIN conferences c ON c.id = t.conference_id WHERE c.id IS NULL",
			mutate: "DELETE t FROM " + t + " t LEFT JOIN conferences c ON c.id = t.conference_id WHERE c.id IS NULL",
		})
	}
	out = append(out,
		step{
			name:   "expired active access tokens",
			count:  "SELECT COUNT(*) FROM access_tokens WHERE active = 1 AND expires < UTC_TIMESTAMP()",
			mutate: "UPDATE access_tokens SET active = 0 WHERE active = 1 AND expires < UTC_TIMESTAMP()",
		},
		step{
			name:   "expired active refresh tokens",
			count:  "SELECT COUNT(*) FROM refresh_tokens WHERE active = 1 AND expires < UTC_TIMESTAMP()",
			mutate: "UPDATE refresh_tokens SET active = 0 WHERE active = 1 AND expires < UTC_TIMESTAMP()",
		},
		// A revoked access token with a live refresh token is a
		// partial-logout gap; close it.
		step{
			name:   "refresh tokens of revoked access tokens",
			count:  "SELECT COUNT(*) FROM refresh_tokens rt JOIN access_tokens at ON at.id = rt.access_token_id WHERE rt.active = 1 AND at.active = 0",
			mutate: "UPDATE refresh_tokens rt JOIN access_tokens at ON at.id = rt.access_token_id SET rt.active = 0 WHERE rt.active = 1 AND at.active = 0",
		},
	)
	return out
}
