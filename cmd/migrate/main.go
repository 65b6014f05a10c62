package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/db"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	flag.Parse()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command := arguments[0]
	args := arguments[1:]

	gdb, err := db.NewDB(cfg)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("database handle failed", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(sqlDB, command, args...); err != nil {
		logger.Error("migration failed", "command", command, "err", err)
		os.Exit(1)
	}

	logger.Info("migration finished", "command", command)
}
