package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dispenser/pkg/app"
)

// main acts as a thin adapter so existing process managers can keep using cmd/server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:], nil); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
