package main

import (
	"flag"
	"log"
	"os"

	"MacroGold/internal/di"
	"MacroGold/pkg/config"
	"MacroGold/pkg/server"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", server.ModeOnce, "run mode: once or serve")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *mode != server.ModeOnce && *mode != server.ModeServe {
		log.Fatalf("unknown mode %q", *mode)
	}

	log.Printf("env=%s mode=%s sources=%v", cfg.Environment, *mode, cfg.Sources.Order)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	app.SetMode(*mode)

	// Run application (blocks in serve mode)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
