package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type config struct {
	ServerURL string
	LogFile   string
	PageSize  int
}

// loadConfig layers defaults, .env, BATTLESHIP_* environment variables, and
// flags, in that order.
func loadConfig() config {
	_ = godotenv.Load() // .env is optional

	cfg := config{
		ServerURL: "http://localhost:8080",
		LogFile:   "battleship.log",
		PageSize:  5,
	}
	if v := os.Getenv("BATTLESHIP_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("BATTLESHIP_LOG"); v != "" {
		cfg.LogFile = v
	}

	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "game server base URL")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (stdout belongs to the UI)")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "games per lobby page")
	flag.Parse()

	return cfg
}
