package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/cheese/game"
)

var (
	ErrUnknownGameID      = errors.New("unknown game ID")
	ErrUnsupportedVersion = errors.New("unsupported game document version")
	ErrFnUnknownGameID    = func(gameID string) error {
		return fmt.Errorf("%w %q", ErrUnknownGameID, gameID)
	}
)

// GameStore keeps one GameState document per game.
// Save overwrites the whole document; the last write wins.
type GameStore interface {
	Save(ctx context.Context, gameID string, s game.GameState) error
	Load(ctx context.Context, gameID string) (game.GameState, error)
	Exists(ctx context.Context, gameID string) (bool, error)
	// Subscribe yields the current document, then every saved one, until
	// ctx is done. A slow reader only sees the latest document.
	Subscribe(ctx context.Context, gameID string) (<-chan game.GameState, error)
}

// EncodeState converts a GameState into its stored JSON form
func EncodeState(s game.GameState) ([]byte, error) {
	if s.Version != game.DocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	return json.Marshal(s)
}

// DecodeState parses a stored document
func DecodeState(data []byte) (game.GameState, error) {
	var s game.GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return game.GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	if s.Version != game.DocumentVersion {
		return game.GameState{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	return s, nil
}

// InMemoryGameStore maps game id to its encoded document
type InMemoryGameStore struct {
	writeMu sync.Mutex // orders saves with their notifications
	mu      sync.RWMutex
	games   map[string][]byte
	subs    *Broadcaster
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string][]byte{},
		subs:  NewBroadcaster(),
	}
}

func (s *InMemoryGameStore) Save(ctx context.Context, gameID string, state game.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeState(state)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.games[gameID] = data
	s.mu.Unlock()

	s.subs.Publish(gameID, state)
	return nil
}

func (s *InMemoryGameStore) Load(ctx context.Context, gameID string) (game.GameState, error) {
	if err := ctx.Err(); err != nil {
		return game.GameState{}, err
	}

	s.mu.RLock()
	data, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return game.GameState{}, ErrFnUnknownGameID(gameID)
	}
	return DecodeState(data)
}

func (s *InMemoryGameStore) Exists(ctx context.Context, gameID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[gameID]
	return ok, nil
}

func (s *InMemoryGameStore) Subscribe(ctx context.Context, gameID string) (<-chan game.GameState, error) {
	return s.subs.Subscribe(ctx, gameID, func() (game.GameState, error) {
		return s.Load(ctx, gameID)
	})
}
