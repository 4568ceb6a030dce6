package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/config"
	"github.com/minaorangina/cheese/dice"
	"github.com/minaorangina/cheese/identity"
	"github.com/minaorangina/cheese/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	names := flag.String("players", "Hermione,Horatio", "comma separated player names, the first creates the game")
	goal := flag.Int("goal", 1000, "score needed to win")
	seed := flag.Int64("seed", 0, "dice seed, 0 for a random game")
	bonus := flag.Bool("bonus", cfg.BonusCards, "deal bonus cards")
	identityPath := flag.String("identity", cfg.IdentityPath, "file holding this installation's user id")
	flag.Parse()

	players := []string{}
	for _, n := range strings.Split(*names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			players = append(players, n)
		}
	}
	if len(players) == 0 {
		log.Fatal("at least one player is required")
	}

	creatorID, err := identity.NewFile(*identityPath).Identity()
	if err != nil {
		log.Fatal(err)
	}

	roller := dice.NewRoller()
	rngSeed := time.Now().UnixNano()
	if *seed != 0 {
		roller = dice.NewSeededRoller(*seed)
		rngSeed = *seed
	}

	opts := []cheese.Option{}
	if *bonus {
		opts = append(opts, cheese.WithBonusCards(rand.New(rand.NewSource(rngSeed))))
	}
	ss := cheese.NewSessions(store.NewInMemoryGameStore(), roller, opts...)

	ctx := context.Background()
	gameID, _, err := ss.Create(ctx, len(players), *goal, creatorID)
	if err != nil {
		log.Fatal(err)
	}
	for i, name := range players {
		uid := identity.NewID()
		if i == 0 {
			uid = creatorID
		}
		if _, err := ss.Join(ctx, gameID, name, uid); err != nil {
			log.Fatal(err)
		}
	}
	if _, err := ss.Start(ctx, gameID, creatorID); err != nil {
		log.Fatal(err)
	}

	if err := play(ctx, ss, gameID, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
