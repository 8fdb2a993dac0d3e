package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"dispenser/internal/menu"
	"dispenser/pkg/httpapi"
	"dispenser/pkg/vending"
	"dispenser/pkg/version"
)

// Config captures CLI flags so the dispenser can run with a single Run call.
type Config struct {
	showVersion   bool
	interactive   bool
	debug         bool
	port          int
	slots         int
	slotCap       int
	denominations string
	floatPerNote  int
}

// Run composes the vending machine with either the terminal menu or the HTTP
// server, depending on configuration.
func Run(ctx context.Context, args []string, logger *zap.Logger) error {
	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// Help output is already printed by the flag package, so we quietly exit.
			return nil
		}
		return err
	}

	if logger == nil {
		logger, err = buildLogger(cfg.debug)
		if err != nil {
			return fmt.Errorf("unable to build logger: %w", err)
		}
		defer logger.Sync()
	}

	if cfg.showVersion {
		logger.Info("dispenser", zap.String("version", version.Version()))
		return nil
	}

	values, err := parseDenominations(cfg.denominations)
	if err != nil {
		return err
	}

	machine, err := vending.NewMachine(vending.Config{
		SlotCount:     cfg.slots,
		MaxPerSlot:    cfg.slotCap,
		Denominations: values,
		FloatPerNote:  cfg.floatPerNote,
	})
	if err != nil {
		return fmt.Errorf("unable to build vending machine: %w", err)
	}
	defer machine.Close()

	if cfg.interactive {
		logger.Info("running interactive menu")
		return menu.New(machine, os.Stdin, os.Stdout).Run(ctx)
	}

	srv, err := httpapi.New(machine, logger)
	if err != nil {
		return fmt.Errorf("unable to build http server: %w", err)
	}

	addr := cfg.address()
	server := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("dispenser service is running", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	}
	return nil
}

// address converts CLI port configuration into a binding string.
func (c Config) address() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":" + strconv.Itoa(c.port)
}

// parseFlags uses a dedicated FlagSet so Run can be called from multiple entry points.
func parseFlags(args []string) (Config, error) {
	set := flag.NewFlagSet("dispenser", flag.ContinueOnError)
	set.SetOutput(io.Discard)

	var cfg Config
	set.BoolVar(&cfg.showVersion, "version", false, "Show the application version")
	set.BoolVar(&cfg.interactive, "interactive", false, "Drive the machine from a terminal menu instead of HTTP")
	set.BoolVar(&cfg.debug, "debug", false, "Log at debug level with a development-friendly format")
	set.IntVar(&cfg.port, "port", 8765, "Port for the HTTP server")
	set.IntVar(&cfg.slots, "slots", 10, "Number of catalog slots in the machine")
	set.IntVar(&cfg.slotCap, "slot-cap", 10, "Maximum units any single slot can hold")
	set.StringVar(&cfg.denominations, "denominations", "1,5,10,20,50,100", "Comma-separated note values in minor units")
	set.IntVar(&cfg.floatPerNote, "float", 10, "Starting note count per denomination")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseDenominations turns the CSV flag into note values for the cash ledger.
func parseDenominations(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid denomination %q: %w", part, err)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, errors.New("at least one denomination is required")
	}
	return values, nil
}

// buildLogger keeps production output structured while -debug favors readability.
func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
