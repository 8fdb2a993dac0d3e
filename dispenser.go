package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dispenser/pkg/app"
)

// main exposes a root-level entry point so operators can simply run `go run dispenser.go`.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:], nil); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
