package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/kairos-gantt/internal/cli"
	"github.com/alexanderramin/kairos-gantt/internal/config"
	"github.com/alexanderramin/kairos-gantt/internal/db"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	itemRepo := repository.NewSQLiteItemRepo(database)
	orderRepo := repository.NewSQLiteOrderRepo(database)

	// Wire unit of work for transactional imports
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, level))
	}
	// Engine diagnostics (order load/save failures) always go to stderr.
	engineLog := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	timelineSvc := service.NewTimelineService(itemRepo, orderRepo, engineLog, observers...)
	importSvc := service.NewImportService(uow, observers...)

	app := &cli.App{
		Items:    service.NewItemService(itemRepo, observers...),
		Timeline: timelineSvc,
		Import:   importSvc,

		TimelineView: timelineSvc,
		ImportItems:  importSvc,

		UserID: cfg.UserID,
		Kind:   cfg.Kind(),
	}

	// Detect interactive terminal for the board and the add wizard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
