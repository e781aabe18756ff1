package main

import (
	"fmt"
	"os"

	"github.com/docukit/docgraph-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		a.Log.Fatal("Failed to start background consumers", "error", err)
	}

	a.Log.Info("Starting HTTP server...", "port", a.Cfg.Port)
	if err := a.Run(); err != nil {
		a.Log.Fatal("HTTP server exited", "error", err)
	}
}
