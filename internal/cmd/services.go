package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/auction"
	"github.com/mcdev12/draftroom/internal/drafts"
	"github.com/mcdev12/draftroom/internal/players"
	"github.com/mcdev12/draftroom/internal/quiethours"
	"github.com/mcdev12/draftroom/internal/settings"
	"github.com/mcdev12/draftroom/internal/sweeper"
	"github.com/mcdev12/draftroom/internal/teams"
)

type Services struct {
	Auction    *auction.Service
	Teams      *teams.Service
	Players    *players.Service
	Settings   *settings.Service
	QuietHours *quiethours.Service
	Drafts     *drafts.Service

	auctionApp    *auction.App
	quietHoursApp *quiethours.App
	draftsRepo    *drafts.Repository
}

func setupServices(database *sql.DB) *Services {
	// Database layer -> repository layer -> app layer -> service layer.
	guard := admin.NewGuard(getEnv("ADMIN_CODE", ""))
	cronSecret := getEnv("CRON_SECRET", "")
	clk := clockwork.NewRealClock()

	teamsRepo := teams.NewRepository(database)
	teamsApp := teams.NewApp(teamsRepo)
	teamsService := teams.NewService(teamsApp, guard)

	playersRepo := players.NewRepository(database)
	playersApp := players.NewApp(playersRepo)
	playersService := players.NewService(playersApp, guard)

	settingsRepo := settings.NewRepository(database)
	settingsApp := settings.NewApp(settingsRepo)
	settingsService := settings.NewService(settingsApp, guard)

	auctionRepo := auction.NewRepository(database)
	auctionApp := auction.NewApp(auctionRepo, teamsRepo, playersRepo, settingsRepo, clk)
	auctionService := auction.NewService(auctionApp, guard)

	quietHoursRepo := quiethours.NewRepository(database)
	quietHoursApp := quiethours.NewApp(quietHoursRepo, settingsRepo, clk)
	quietHoursService := quiethours.NewService(quietHoursApp, guard, cronSecret)

	draftsRepo := drafts.NewRepository(database)
	draftsService := drafts.NewService(draftsRepo, guard)

	return &Services{
		Auction:    auctionService,
		Teams:      teamsService,
		Players:    playersService,
		Settings:   settingsService,
		QuietHours: quietHoursService,
		Drafts:     draftsService,

		auctionApp:    auctionApp,
		quietHoursApp: quietHoursApp,
		draftsRepo:    draftsRepo,
	}
}

// newSweeper builds the background maintenance loop from the already wired
// app layer.
func newSweeper(services *Services, cfg *Config) *sweeper.Sweeper {
	return sweeper.New(
		services.draftsRepo,
		services.auctionApp,
		services.quietHoursApp,
		clockwork.NewRealClock(),
		sweeper.Config{
			Interval: cfg.sweeperInterval(),
			Workers:  cfg.Sweeper.Workers,
		},
	)
}
