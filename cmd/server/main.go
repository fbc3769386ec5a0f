package main

import (
	"FeastForBeasts/cmd/config"
	migration "FeastForBeasts/cmd/database/migrate"
	"FeastForBeasts/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to start app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	log.Infow("starting server", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
