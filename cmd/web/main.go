package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/config"
	"github.com/minaorangina/cheese/dice"
	"github.com/minaorangina/cheese/server"
	"github.com/minaorangina/cheese/store"
	"github.com/minaorangina/cheese/store/postgres"
	"github.com/minaorangina/cheese/store/sqlite"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	gs, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	opts := []cheese.Option{}
	if cfg.BonusCards {
		opts = append(opts, cheese.WithBonusCards(rand.New(rand.NewSource(time.Now().UnixNano()))))
	}
	sessions := cheese.NewSessions(gs, dice.NewRoller(), opts...)

	s := server.NewServer(sessions, server.ServerOpts{
		RollDelay: cfg.RollDelay,
		StaticDir: cfg.StaticDir,
	})
	log.Printf("Listening on %s with the %s store...", cfg.Addr, cfg.Store)
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}

func openStore(cfg config.Config) (store.GameStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.StorePostgres:
		s, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}

	return store.NewInMemoryGameStore(), func() {}, nil
}
