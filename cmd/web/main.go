package main

import (
	"github.com/joho/godotenv"

	"coachdeck_backend/internal/app"
	"coachdeck_backend/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment as is")
	}

	app.Run()
}
