// Package storetest checks that a store.GameStore behaves like the
// in-memory reference store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/minaorangina/cheese/game"
	utils "github.com/minaorangina/cheese/internal"
	"github.com/minaorangina/cheese/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = 2 * time.Second

// NewGame returns a fresh game with two players
func NewGame(t *testing.T) (string, game.GameState) {
	t.Helper()

	gameID, s, err := game.CreateGame(4, 500, "creator-id")
	require.NoError(t, err)
	s, err = game.AddPlayer(s, "Hermione", "creator-id")
	require.NoError(t, err)
	s, err = game.AddPlayer(s, "Horatio", "horatio-1")
	require.NoError(t, err)
	return gameID, s
}

// Run exercises every GameStore operation against the store built by newStore
func Run(t *testing.T, newStore func(t *testing.T) store.GameStore) {
	ctx := context.Background()

	t.Run("saves and loads a game", func(t *testing.T) {
		str := newStore(t)
		gameID, s := NewGame(t)

		require.NoError(t, str.Save(ctx, gameID, s))

		got, err := str.Load(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, s, got)

		ok, err := str.Exists(ctx, gameID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("the last save wins", func(t *testing.T) {
		str := newStore(t)
		gameID, s := NewGame(t)
		require.NoError(t, str.Save(ctx, gameID, s))

		started, err := game.StartGame(s, "creator-id")
		require.NoError(t, err)
		require.NoError(t, str.Save(ctx, gameID, started))

		got, err := str.Load(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, game.InProgress, got.MacroState)
	})

	t.Run("handles a non-existent game", func(t *testing.T) {
		str := newStore(t)

		_, err := str.Load(ctx, "fake-id")
		utils.AssertErrorIs(t, err, store.ErrUnknownGameID)

		ok, err := str.Exists(ctx, "fake-id")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = str.Subscribe(ctx, "fake-id")
		utils.AssertErrorIs(t, err, store.ErrUnknownGameID)
	})

	t.Run("refuses documents it cannot read back", func(t *testing.T) {
		str := newStore(t)
		gameID, s := NewGame(t)
		s.Version = 0

		err := str.Save(ctx, gameID, s)
		utils.AssertErrorIs(t, err, store.ErrUnsupportedVersion)
	})

	t.Run("subscribers get the current game then every save", func(t *testing.T) {
		str := newStore(t)
		gameID, s := NewGame(t)
		require.NoError(t, str.Save(ctx, gameID, s))

		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		updates, err := str.Subscribe(subCtx, gameID)
		require.NoError(t, err)

		first := utils.Receive(t, updates, wait)
		assert.Equal(t, game.Waiting, first.MacroState)

		started, err := game.StartGame(s, "creator-id")
		require.NoError(t, err)
		require.NoError(t, str.Save(ctx, gameID, started))

		second := utils.Receive(t, updates, wait)
		assert.Equal(t, game.InProgress, second.MacroState)

		cancel()
		utils.AssertClosed(t, updates, wait)
	})

	t.Run("slow subscribers see the latest save", func(t *testing.T) {
		str := newStore(t)
		gameID, s := NewGame(t)
		require.NoError(t, str.Save(ctx, gameID, s))

		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		updates, err := str.Subscribe(subCtx, gameID)
		require.NoError(t, err)

		for score := 1; score <= 3; score++ {
			s = s.Clone()
			s.Players[0].Score = score * 100
			require.NoError(t, str.Save(ctx, gameID, s))
		}

		got := utils.Receive(t, updates, wait)
		assert.Equal(t, 300, got.Players[0].Score)
	})
}
