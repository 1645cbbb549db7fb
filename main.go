package main

import (
	"context"
	"os"
	"os/signal"

	"kirana/config"
	"kirana/db"
	"kirana/service"
	"kirana/shell"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to the database")
	}
	defer conn.Close()

	conn.MigrateSchema()

	svc := service.New(conn)
	app := shell.NewApp(svc)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logrus.Fatal(err)
	}
}
