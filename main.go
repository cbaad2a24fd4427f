package main

import (
	"log"

	"observation-processor/pkg/api"
	"observation-processor/pkg/config"
	"observation-processor/pkg/pipeline"
	"observation-processor/pkg/server"
)

func main() {
	log.Println("Starting observation report processor")
	cfg := config.Load()
	log.Printf("Configuration loaded: Port=%s, Model=%s, MaxConcurrent=%d",
		cfg.Port, cfg.GeminiModel, cfg.MaxConcurrent)

	client := api.NewClient(cfg.GeminiKey, cfg.GeminiModel, cfg.RequestTimeout)
	pipe := pipeline.New(client, cfg)

	log.Fatal(server.New(cfg, pipe).Start())
}
