package store

import (
	"context"
	"sync"

	"github.com/minaorangina/cheese/game"
)

// Broadcaster fans saved documents out to subscribers of a game.
// Every subscriber has room for one pending document; publishing replaces a
// pending document rather than waiting for the reader.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[string]map[chan game.GameState]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[string]map[chan game.GameState]struct{}{}}
}

// Subscribe registers a subscriber primed with the document returned by load.
// load runs while publishing is blocked, so no save can fall between the
// snapshot and the registration. The channel is closed once ctx is done.
func (b *Broadcaster) Subscribe(
	ctx context.Context,
	gameID string,
	load func() (game.GameState, error),
) (<-chan game.GameState, error) {
	b.mu.Lock()
	current, err := load()
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}

	ch := make(chan game.GameState, 1)
	ch <- current
	if b.subs[gameID] == nil {
		b.subs[gameID] = map[chan game.GameState]struct{}{}
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[gameID], ch)
		if len(b.subs[gameID]) == 0 {
			delete(b.subs, gameID)
		}
		close(ch)
	}()

	return ch, nil
}

// Publish hands s to every subscriber of gameID
func (b *Broadcaster) Publish(gameID string, s game.GameState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[gameID] {
		select {
		case ch <- s.Clone():
			continue
		default:
		}
		// drop the stale document the reader has not picked up yet
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s.Clone():
		default:
		}
	}
}

// Subscribers returns the number of live subscribers for gameID
func (b *Broadcaster) Subscribers(gameID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[gameID])
}
