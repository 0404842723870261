package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mcdev12/draftroom/internal/dbconfig"
	"github.com/mcdev12/draftroom/internal/models"
)

// Seed mirrors the JSON seed file structure.
type Seed struct {
	Draft struct {
		Name              string `json:"name"`
		NominationSeconds int    `json:"nomination_seconds"`
		BidSeconds        int    `json:"bid_seconds"`
	} `json:"draft"`
	Teams []struct {
		Name     string `json:"name"`
		JoinCode string `json:"join_code"`
		Budget   int    `json:"budget"`
		Spots    int    `json:"spots"`
	} `json:"teams"`
	Players []struct {
		Name      string `json:"name"`
		Primary   string `json:"primary"`
		Secondary string `json:"secondary"`
	} `json:"players"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	seedPath := os.Getenv("SEED_FILE")
	if seedPath == "" {
		seedPath = "seed_draft.json"
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read seed file: %v\n", err)
		os.Exit(1)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal seed file: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	draftID := uuid.New()

	if _, err := pool.Exec(ctx,
		`INSERT INTO drafts (id, name) VALUES ($1, $2)`,
		draftID, seed.Draft.Name,
	); err != nil {
		fmt.Fprintf(os.Stderr, "insert draft: %v\n", err)
		os.Exit(1)
	}

	nomination := seed.Draft.NominationSeconds
	if nomination <= 0 {
		nomination = 600
	}
	bid := seed.Draft.BidSeconds
	if bid <= 0 {
		bid = 120
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO draft_settings (draft_id, nomination_seconds, bid_seconds) VALUES ($1, $2, $3)`,
		draftID, nomination, bid,
	); err != nil {
		fmt.Fprintf(os.Stderr, "insert draft settings: %v\n", err)
		os.Exit(1)
	}

	var teamErrs int
	for _, t := range seed.Teams {
		if _, err := pool.Exec(ctx, `
			INSERT INTO teams (
				id, draft_id, name, join_code,
				budget_total, budget_remaining, roster_spots_total, roster_spots_remaining
			) VALUES ($1, $2, $3, $4, $5, $5, $6, $6)
			ON CONFLICT (draft_id, name) DO NOTHING`,
			uuid.New(), draftID, t.Name, t.JoinCode, t.Budget, t.Spots,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", t.Name, err)
			teamErrs++
		}
	}

	var playerErrs int
	for _, p := range seed.Players {
		eligibility := models.PositionEligibility{Primary: models.Position(p.Primary)}
		if p.Secondary != "" {
			secondary := models.Position(p.Secondary)
			eligibility.Secondary = &secondary
		}
		metadata, err := json.Marshal(eligibility)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error encoding player %s: %v\n", p.Name, err)
			playerErrs++
			continue
		}

		if _, err := pool.Exec(ctx, `
			INSERT INTO players (id, draft_id, name, metadata)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (draft_id, name) DO NOTHING`,
			uuid.New(), draftID, p.Name, metadata,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error inserting player %s: %v\n", p.Name, err)
			playerErrs++
		}
	}

	fmt.Printf(
		"Seed complete: draft %s, %d teams (%d errors), %d players (%d errors)\n",
		draftID, len(seed.Teams), teamErrs, len(seed.Players), playerErrs,
	)
}
