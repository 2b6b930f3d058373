package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	channelinsights "insight-stack/agents/channel-insights"
	"insight-stack/shared/config"
	"insight-stack/shared/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := channelinsights.NewInsightsAgent(cfg)
	s := scheduler.New(cfg, agent)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--once":
			fmt.Println("Running once...")
			if err := agent.Initialize(); err != nil {
				log.Fatalf("Failed to initialize agent: %v", err)
			}
			if err := s.RunOnce(ctx); err != nil {
				log.Fatalf("Failed to run: %v", err)
			}
			return

		case "--search":
			if len(os.Args) < 3 {
				log.Fatal("--search requires a query argument")
			}
			if err := agent.Initialize(); err != nil {
				log.Fatalf("Failed to initialize agent: %v", err)
			}
			report, err := agent.SearchInsights(ctx, os.Args[2], 20)
			if err != nil {
				log.Fatalf("Search failed: %v", err)
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				log.Fatalf("Failed to encode report: %v", err)
			}
			fmt.Println(string(out))
			return
		}
	}

	fmt.Println("Starting scheduler...")
	if err := s.Start(ctx); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}
