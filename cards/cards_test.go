package cards

import (
	"math/rand"
	"testing"

	"github.com/minaorangina/cheese/dice"
	"github.com/minaorangina/cheese/game"
	utils "github.com/minaorangina/cheese/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullDeckCount = 30

func startedGame(t *testing.T) game.GameState {
	t.Helper()
	_, s, err := game.CreateGame(2, 5000, "p1")
	require.NoError(t, err)
	s, err = game.AddPlayer(s, "Harry", "p1")
	require.NoError(t, err)
	s, err = game.AddPlayer(s, "Sally", "p2")
	require.NoError(t, err)
	s, err = game.StartGame(s, "p1")
	require.NoError(t, err)
	return s
}

func TestDeck(t *testing.T) {
	t.Run("new deck holds every dealt card", func(t *testing.T) {
		d := NewDeck()
		assert.Len(t, d, fullDeckCount)

		counts := map[Kind]int{}
		for _, k := range d {
			counts[k]++
		}
		assert.Equal(t, map[Kind]int{Bonus300: 12, Bonus400: 10, Bonus500: 8}, counts)
	})

	t.Run("shuffle keeps the same cards", func(t *testing.T) {
		d := NewDeck()
		d.Shuffle(rand.New(rand.NewSource(1)))
		assert.ElementsMatch(t, NewDeck(), d)
	})

	t.Run("draw takes from the top until empty", func(t *testing.T) {
		d := Deck{Bonus300, Bonus500}

		k, ok := d.Draw()
		assert.True(t, ok)
		assert.Equal(t, Bonus500, k)

		k, ok = d.Draw()
		assert.True(t, ok)
		assert.Equal(t, Bonus300, k)

		_, ok = d.Draw()
		assert.False(t, ok)
	})

	t.Run("survives the persisted form", func(t *testing.T) {
		d := NewDeck()
		assert.Equal(t, d, FromStrings(d.Strings()))
	})
}

func TestDraw(t *testing.T) {
	t.Run("moves the top card to the current card", func(t *testing.T) {
		s := startedGame(t)
		s.Deck = []string{"Bonus300", "Bonus400"}

		got, err := Draw(s)
		require.NoError(t, err)
		assert.Equal(t, "Bonus400", got.CurrentCard)
		assert.Equal(t, []string{"Bonus300"}, got.Deck)
		assert.Equal(t, []string{"Bonus300", "Bonus400"}, s.Deck)
	})

	t.Run("one card per turn", func(t *testing.T) {
		s := startedGame(t)
		s.Deck = []string{"Bonus300"}
		s.CurrentCard = "Bonus500"

		_, err := Draw(s)
		utils.AssertErrorIs(t, err, ErrCardAlreadyDrawn)
	})

	t.Run("empty deck", func(t *testing.T) {
		s := startedGame(t)

		_, err := Draw(s)
		utils.AssertErrorIs(t, err, ErrDeckEmpty)
	})

	t.Run("only before the first roll", func(t *testing.T) {
		s := startedGame(t)
		s.Deck = NewDeck().Strings()

		rolling, err := game.PreRoll(s, "p1")
		require.NoError(t, err)
		_, err = Draw(rolling)
		utils.AssertErrorIs(t, err, ErrTooLateToDraw)

		landed := game.PostRoll(rolling, dice.NewFixed(1, 5, 2, 3, 4, 6))
		_, err = Draw(landed)
		utils.AssertErrorIs(t, err, ErrTooLateToDraw)

		passed, err := game.SetAsideDice(landed, []int{0, 1, 2, 3, 4, 5})
		require.NoError(t, err)
		require.True(t, game.PassedTheCheese(passed))
		_, err = Draw(passed)
		utils.AssertErrorIs(t, err, ErrTooLateToDraw)
	})

	t.Run("game must be in progress", func(t *testing.T) {
		_, s, err := game.CreateGame(2, 5000, "p1")
		require.NoError(t, err)
		s.Deck = NewDeck().Strings()

		_, err = Draw(s)
		utils.AssertErrorIs(t, err, game.ErrGameNotInProgress)
	})
}

func TestPassBonus(t *testing.T) {
	passed := func(t *testing.T, card string) game.GameState {
		t.Helper()
		s := startedGame(t)
		s.CurrentCard = card
		s = game.PostRoll(s, dice.NewFixed(1, 2, 3, 4, 5, 6))
		s, err := game.SetAsideDice(s, []int{0, 1, 2, 3, 4, 5})
		require.NoError(t, err)
		return s
	}

	t.Run("pays out when the cheese is passed", func(t *testing.T) {
		s := passed(t, "Bonus400")
		assert.Equal(t, 400, PassBonus(s))

		s, err := game.EndTurn(s, false, PassBonus)
		require.NoError(t, err)
		assert.Equal(t, 1900, s.Players[0].Score)
	})

	t.Run("nothing without a card", func(t *testing.T) {
		assert.Equal(t, 0, PassBonus(passed(t, "")))
	})

	t.Run("nothing without passing the cheese", func(t *testing.T) {
		s := startedGame(t)
		s.CurrentCard = "Bonus500"
		s = game.PostRoll(s, dice.NewFixed(1, 2, 2, 3, 3, 4))
		assert.Equal(t, 0, PassBonus(s))
	})

	t.Run("penalty cards are not paid", func(t *testing.T) {
		assert.Equal(t, 0, PassBonus(passed(t, string(CheeseStrikesBack))))
	})

	t.Run("unknown cards are ignored", func(t *testing.T) {
		assert.Equal(t, 0, PassBonus(passed(t, "Joker")))
	})
}
