package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tqdat410/balance-of-interests/internal/api"
	"github.com/tqdat410/balance-of-interests/internal/config"
	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/logging"
	"github.com/tqdat410/balance-of-interests/internal/storage"
	"github.com/tqdat410/balance-of-interests/internal/version"
)

func main() {
	// A missing verification secret is an operator error: the server cannot
	// validate submissions without it, so refuse to start.
	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Missing or invalid environment configuration", err, logging.Fields{
			"hint": "set " + constants.EnvVerificationSecret + " to the shared signing secret",
		})
	}

	// The game configuration file holds the action catalog and the event
	// schedule. It is required even for the server: loading it at startup
	// catches a broken deploy before the first submission arrives.
	cfg, err := config.LoadConfig(env.ConfigPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{
			"config_path": env.ConfigPath,
			"hint":        "create a balance_config.json with 'actions' pools for all three entities and an 'events' schedule",
		})
	}

	db, err := storage.OpenAndMigrate(env.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": env.DBPath})
	}
	repo := storage.NewSQLiteRepository(db)
	handler := api.NewScoreHandler(repo, env.VerificationSecret)

	router := gin.Default()

	// Liveness probe target (used by cmd/healthcheck).
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteSubmitScore, handler.SubmitScore)
		apiRoutes.POST(constants.RouteLeaderboard, handler.Leaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: addr,
		"version":              version.Version,
	})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
