package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezmoss/ritualcli/internal/config"
	"github.com/rezmoss/ritualcli/internal/logger"
	"github.com/rezmoss/ritualcli/internal/quote"
	"github.com/rezmoss/ritualcli/internal/stats"
	"github.com/rezmoss/ritualcli/internal/storage"
	"github.com/rezmoss/ritualcli/internal/ui"
)

const (
	defaultDB     = "ritualcli.db"
	defaultConfig = "ritual.yaml"
	defaultLog    = "ritualcli.log"
)

func main() {
	dbFlag := flag.String("db", defaultDB, "path to SQLite database")
	configFlag := flag.String("config", defaultConfig, "path to ritual config (optional)")
	logFlag := flag.String("log", defaultLog, "path to log file (empty to disable)")
	reportFlag := flag.Bool("report", false, "print report and exit")
	rng := flag.String("range", "today", "report range: today|week|history")

	flag.Parse()

	log, err := logger.New(*logFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	store, err := storage.Open(*dbFlag, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate store:", err)
		os.Exit(1)
	}

	statsSvc := stats.New(store)
	store.Subscribe(statsSvc.Invalidate)

	if *reportFlag {
		if err := report(statsSvc, cfg, *rng); err != nil {
			fmt.Fprintln(os.Stderr, "report:", err)
			os.Exit(1)
		}
		return
	}

	selector := quote.New(cfg.Quotes, rand.New(rand.NewSource(time.Now().UnixNano())))
	app := ui.NewApp(store, statsSvc, selector, cfg, log)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
