package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salespipe/internal/app"
)

func main() {
	configFile := flag.String("config", "", "path to config file (defaults to salespipe.yaml)")
	flag.Parse()

	if *configFile != "" {
		os.Setenv("SALESPIPE_CONFIG", *configFile)
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	result, err := application.ExecutePipeline(context.Background())
	if err != nil {
		application.Logger.Error("Pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Run %s complete: %d facts, %d warnings\n",
		result.RunID, len(result.Facts), len(result.Warnings()))
	fmt.Printf("Outputs written to %s\n", application.Config.Paths.OutputDir)
}
