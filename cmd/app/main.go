package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"familymedt/internal/adapters/cli"
	"familymedt/internal/adapters/repl"
	"familymedt/internal/app"
	"familymedt/internal/core"
	"familymedt/internal/platform/logger"
	"familymedt/internal/storage"
	"familymedt/internal/storage/csvfile"
	"familymedt/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	var store storage.Store
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		pg, err := postgres.Open(ctx, connStr)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pg.Close()
		store = pg
	} else {
		dir := os.Getenv("FAMILYMEDT_DATA_DIR")
		if dir == "" {
			dir = "./data"
		}
		fs, err := csvfile.New(dir)
		if err != nil {
			log.Fatalf("Unable to prepare data directory: %v", err)
		}
		store = fs
	}

	alerts := core.NewAlertService(ctx, store, zlog)
	members := core.NewMemberService(ctx, store, alerts, zlog)
	svc := app.NewAppService(members, alerts)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}

	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
