package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yananas974/pokebattle/internal/api"
	"github.com/yananas974/pokebattle/internal/config"
	"github.com/yananas974/pokebattle/internal/constants"
	"github.com/yananas974/pokebattle/internal/logging"
	"github.com/yananas974/pokebattle/internal/session"
	"github.com/yananas974/pokebattle/internal/storage"
	"github.com/yananas974/pokebattle/internal/weather"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the game configuration file (required). Path may be provided
	// via POKEBATTLE_CONFIG or defaults to ./pokebattle_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./pokebattle_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": configPath, "hint": "create a pokebattle_config.json with a 'creature_list' array (name,type,base_hp,attack,defense,speed,moves) and a 'word_pool' array for hack challenges"})
	}

	// Allow the DB path to be configured via POKEBATTLE_DB. Default to a
	// data/ directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/pokebattle.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Creatures)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	store := session.NewStore(cfg.WordPool, cfg.ChallengeTuning, cfg.FinishedBattleTTL, repo)
	store.StartSweeper(session.SweepInterval, nil)

	provider := weather.NewClient(os.Getenv(constants.EnvOpenWeatherAPIKey))
	handler := api.NewBattleHandler(repo, store, provider)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()
	router.GET(constants.RouteHealthz, func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "battles": store.Len()})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCreatures, handler.ListCreatures)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.POST(constants.RouteTeams, handler.CreateTeam)
		protected.GET(constants.RouteTeams, handler.ListTeams)

		protected.POST(constants.RouteBattleQuick, handler.QuickBattle)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.POST(constants.RouteBattleAction, handler.SubmitAction)
		protected.POST(constants.RouteBattleAnswer, handler.SubmitAnswer)
		protected.POST(constants.RouteBattleForfeit, handler.ForfeitBattle)
	}

	apiRoutes.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{"addr": addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
