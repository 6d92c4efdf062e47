package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/eap/internal/cli"
	"github.com/alexanderramin/eap/internal/config"
	"github.com/alexanderramin/eap/internal/db"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var logOut io.Writer
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logOut, cfg.Level())

	uow := db.NewSQLiteUnitOfWork(database)
	app := &cli.App{
		EAPs:    service.NewEAPService(repository.NewSQLiteEAPRepo(database), observer),
		WBS:     service.NewWBSService(uow, observer),
		Imports: service.NewImportService(uow, observer),
		Session: cfg.Session(),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
