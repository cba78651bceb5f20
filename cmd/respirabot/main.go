package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/gaubit/respirabot/core/cmd"
	"github.com/gaubit/respirabot/internal/app"
)

func main() {
	// Optional .env for local runs; real deployments use the environment.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        app.LoadConfig,
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("respirabot: %v", err)
	}
}
