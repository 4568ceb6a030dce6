package store_test

import (
	"context"
	"testing"

	"github.com/minaorangina/cheese/store"
	"github.com/minaorangina/cheese/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryGameStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.GameStore {
		return store.NewInMemoryGameStore()
	})

	t.Run("callers cannot change a stored game", func(t *testing.T) {
		ctx := context.Background()
		str := store.NewInMemoryGameStore()
		gameID, s := storetest.NewGame(t)
		require.NoError(t, str.Save(ctx, gameID, s))

		s.Players[0].Name = "Neville"

		got, err := str.Load(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, "Hermione", got.Players[0].Name)
	})
}

func TestDecodeState(t *testing.T) {
	t.Run("round trips an encoded game", func(t *testing.T) {
		_, s := storetest.NewGame(t)

		data, err := store.EncodeState(s)
		require.NoError(t, err)

		got, err := store.DecodeState(data)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("rejects other document versions", func(t *testing.T) {
		_, err := store.DecodeState([]byte(`{"version":2,"macroState":"waiting"}`))
		assert.ErrorIs(t, err, store.ErrUnsupportedVersion)

		_, err = store.DecodeState([]byte(`{"gameOver":false,"scores":[0,0]}`))
		assert.ErrorIs(t, err, store.ErrUnsupportedVersion)
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		_, err := store.DecodeState([]byte(`{"version":1,"macroState":"paused"}`))
		assert.Error(t, err)
	})
}
