package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hassaammgl2/employee-management-system/config"
	"github.com/hassaammgl2/employee-management-system/internal/app"
	"github.com/hassaammgl2/employee-management-system/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	conf, err := config.CreateNewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	server := app.App{Config: conf}

	if conf.DBDriver == config.DriverMongoDB {
		db, err := mongodb.ConnectToMongoDB(context.Background(), conf.MongoDBConfig.URI, conf.MongoDBConfig.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to the database")
		}
		defer db.Client().Disconnect(context.Background())

		server.DB = db
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
