// Package cheese runs Pass the Cheese games against a game store.
package cheese

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/minaorangina/cheese/cards"
	"github.com/minaorangina/cheese/dice"
	"github.com/minaorangina/cheese/game"
	"github.com/minaorangina/cheese/store"
)

var (
	ErrNoScoringDice = errors.New("at least one scoring die must be set aside, and only scoring dice")
	ErrGameExists    = errors.New("a game with this id already exists")
	ErrGameStarted   = errors.New("game has already started")
	ErrRollFirst     = errors.New("roll the dice before setting any aside")
)

// Sessions applies player actions to stored games.
// Every action loads the game, applies one transition and saves the whole
// document back. Concurrent actions on the same game race; the last save wins.
type Sessions struct {
	store  store.GameStore
	roller dice.Roller

	bonusCards bool
	rngMu      sync.Mutex
	rng        *rand.Rand
}

type Option func(*Sessions)

// WithBonusCards deals a deck shuffled by rng into every new game
func WithBonusCards(rng *rand.Rand) Option {
	return func(s *Sessions) {
		s.bonusCards = true
		s.rng = rng
	}
}

// NewSessions constructs Sessions. A nil roller rolls fair dice.
func NewSessions(gs store.GameStore, roller dice.Roller, opts ...Option) *Sessions {
	if roller == nil {
		roller = dice.NewRoller()
	}
	s := &Sessions{store: gs, roller: roller}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create mints and saves a new game
func (ss *Sessions) Create(ctx context.Context, maxPlayers, scoreGoal int, creatorUID string) (string, game.GameState, error) {
	return ss.Host(ctx, maxPlayers, scoreGoal, creatorUID, "")
}

// Host mints a new game with its creator already seated under name, in a
// single save. With an empty name nobody is seated, as with Create.
func (ss *Sessions) Host(ctx context.Context, maxPlayers, scoreGoal int, creatorUID, name string) (string, game.GameState, error) {
	gameID, s, err := game.CreateGame(maxPlayers, scoreGoal, creatorUID)
	if err != nil {
		return "", game.GameState{}, err
	}
	if name != "" {
		if s, err = game.AddPlayer(s, name, creatorUID); err != nil {
			return "", game.GameState{}, err
		}
	}

	exists, err := ss.store.Exists(ctx, gameID)
	if err != nil {
		return "", game.GameState{}, err
	}
	if exists {
		return "", game.GameState{}, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	if ss.bonusCards {
		deck := cards.NewDeck()
		ss.rngMu.Lock()
		deck.Shuffle(ss.rng)
		ss.rngMu.Unlock()
		s.Deck = deck.Strings()
	}

	if err := ss.save(ctx, gameID, s); err != nil {
		return "", game.GameState{}, err
	}
	return gameID, s, nil
}

// Join adds a player to a game that has not started yet
func (ss *Sessions) Join(ctx context.Context, gameID, name, uid string) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if s.MacroState != game.Waiting {
			return s, ErrGameStarted
		}
		return game.AddPlayer(s, name, uid)
	})
}

func (ss *Sessions) Start(ctx context.Context, gameID, uid string) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if s.MacroState != game.Waiting {
			return s, ErrGameStarted
		}
		return game.StartGame(s, uid)
	})
}

// PreRoll opens the roll window. The caller is expected to follow up with
// PostRoll once its roll animation is over.
func (ss *Sessions) PreRoll(ctx context.Context, gameID, uid string) (game.GameState, error) {
	s, _, err := ss.StartRoll(ctx, gameID, uid)
	return s, err
}

// StartRoll is PreRoll that also reports whether this call opened the roll
// window. It is false when a roll was already underway or the game is over,
// so only one PostRoll needs scheduling per roll.
func (ss *Sessions) StartRoll(ctx context.Context, gameID, uid string) (game.GameState, bool, error) {
	started := false
	s, err := ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if s.MacroState == game.Waiting {
			return s, game.ErrGameNotInProgress
		}
		next, err := game.PreRoll(s, uid)
		started = err == nil && !s.Rolling && next.Rolling
		return next, err
	})
	return s, started, err
}

// PostRoll lands the dice. It does nothing unless a roll is underway, so a
// late timer cannot roll twice.
func (ss *Sessions) PostRoll(ctx context.Context, gameID string) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if !s.Rolling {
			return s, nil
		}
		return game.PostRoll(s, ss.roller), nil
	})
}

// SetAside moves the dice at indices into the scoring dice.
// The selection must score and must not include dice that score nothing.
func (ss *Sessions) SetAside(ctx context.Context, gameID, uid string, indices []int) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if err := requireCurrent(s, uid); err != nil {
			return s, err
		}
		if s.MacroState != game.InProgress {
			return s, game.ErrGameNotInProgress
		}
		if s.Rolling || s.TurnState != game.SettingAside {
			return s, ErrRollFirst
		}

		selected := make(map[int]bool, len(indices))
		chosen := make([]int, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(s.DiceValues) {
				return s, fmt.Errorf("%w: %d", game.ErrInvalidDiceIndex, idx)
			}
			if selected[idx] {
				return s, fmt.Errorf("%w: %d selected twice", game.ErrInvalidDiceIndex, idx)
			}
			selected[idx] = true
			chosen = append(chosen, s.DiceValues[idx])
		}
		res, err := dice.Score(chosen)
		if err != nil {
			return s, err
		}
		if res.TotalScore == 0 || len(res.UnscoredDice) > 0 {
			return s, ErrNoScoringDice
		}

		return game.SetAsideDice(s, indices)
	})
}

// EndTurn banks the turn score, or discards it when cut is set.
// A turn whose roll scored nothing is always ended as cut.
func (ss *Sessions) EndTurn(ctx context.Context, gameID, uid string, cut bool) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if err := requireCurrent(s, uid); err != nil {
			return s, err
		}
		if s.Rolling {
			return s, ErrRollFirst
		}
		return game.EndTurn(s, cut || game.CutTheCheese(s), cards.PassBonus)
	})
}

// DrawCard gives the current player the top bonus card
func (ss *Sessions) DrawCard(ctx context.Context, gameID, uid string) (game.GameState, error) {
	return ss.apply(ctx, gameID, func(s game.GameState) (game.GameState, error) {
		if err := requireCurrent(s, uid); err != nil {
			return s, err
		}
		return cards.Draw(s)
	})
}

func (ss *Sessions) Load(ctx context.Context, gameID string) (game.GameState, error) {
	return ss.store.Load(ctx, gameID)
}

// Subscribe streams the current state and every later save
func (ss *Sessions) Subscribe(ctx context.Context, gameID string) (<-chan game.GameState, error) {
	return ss.store.Subscribe(ctx, gameID)
}

// apply is load, transition, save. Nothing is saved when the transition fails.
func (ss *Sessions) apply(ctx context.Context, gameID string, transition func(game.GameState) (game.GameState, error)) (game.GameState, error) {
	s, err := ss.store.Load(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}

	next, err := transition(s)
	if err != nil {
		return s, err
	}

	if err := ss.save(ctx, gameID, next); err != nil {
		return s, err
	}
	return next, nil
}

func (ss *Sessions) save(ctx context.Context, gameID string, s game.GameState) error {
	if err := ss.store.Save(ctx, gameID, s); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	return nil
}

func requireCurrent(s game.GameState, uid string) error {
	current, ok := game.CurrentPlayer(s)
	if !ok || current.UID != uid {
		return game.ErrNotYourTurn
	}
	return nil
}
