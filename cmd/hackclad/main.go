package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/junseokho/HackClad-sub000/internal/api"
	"github.com/junseokho/HackClad-sub000/internal/config"
	"github.com/junseokho/HackClad-sub000/internal/constants"
	"github.com/junseokho/HackClad-sub000/internal/logging"
	"github.com/junseokho/HackClad-sub000/internal/service"
	"github.com/junseokho/HackClad-sub000/internal/storage"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the game configuration file (required). Path may be provided via
	// CLAD_CONFIG env var or defaults to ./clad_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./clad_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": configPath, "hint": "create a clad_config.json with card_list, boss_card_list, character_list, starter_deck and enhanced_pool"})
	}
	cat := cfg.Catalog()

	// Allow the DB path to be configured via CLAD_DB. Default to a `data/`
	// directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/clad.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cat)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	registry := service.NewRegistry(cat, repo, cfg.ChoiceTimeout, cfg.BossHitPoints)

	catalogHandler := api.NewCatalogHandler(repo, cat)
	roomHandler := api.NewRoomHandler(registry, cfg)
	watchHandler := api.NewWatchHandler(registry)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCards, catalogHandler.GetCards)
		apiRoutes.GET(constants.RouteCharacters, catalogHandler.GetCharacters)
		apiRoutes.GET(constants.RouteLeaderboard, catalogHandler.GetLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, catalogHandler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, catalogHandler.UpdatePlayerName)

		protected.POST(constants.RouteRooms, roomHandler.CreateRoom)
		protected.GET(constants.RouteRoomByID, roomHandler.GetRoom)
		protected.POST(constants.RouteRoomIntent, roomHandler.SubmitIntent)
		protected.GET(constants.RouteRoomWatch, watchHandler.Watch)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
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
