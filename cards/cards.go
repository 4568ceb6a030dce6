// Package cards is the bonus card extension: a player may draw a card during
// their turn and collect its bonus if they go on to pass the cheese.
package cards

import (
	"errors"
	"math/rand"

	"github.com/minaorangina/cheese/game"
)

var (
	ErrDeckEmpty        = errors.New("no cards left in the deck")
	ErrCardAlreadyDrawn = errors.New("a card has already been drawn this turn")
	ErrTooLateToDraw    = errors.New("cards can only be drawn before the first roll of a turn")
)

// Kind identifies a card
type Kind string

const (
	Bonus300          Kind = "Bonus300"
	Bonus400          Kind = "Bonus400"
	Bonus500          Kind = "Bonus500"
	MustBust          Kind = "MustBust"
	MustFill          Kind = "MustFill"
	DoubleCheese      Kind = "DoubleCheese"
	NoCheese          Kind = "NoCheese"
	CheeseStrikesBack Kind = "CheeseStrikesBack"
)

// Card describes one kind of card and how many of it a deck holds
type Card struct {
	Name        string
	Kind        Kind
	Bonus       int
	Description string
	Quantity    int
}

// Catalogue lists every card kind. Kinds with no quantity are never dealt.
var Catalogue = []Card{
	{Name: "Bonus 300", Kind: Bonus300, Bonus: 300, Description: "Bonus 300 points if you pass the cheese", Quantity: 12},
	{Name: "Bonus 400", Kind: Bonus400, Bonus: 400, Description: "Bonus 400 points if you pass the cheese", Quantity: 10},
	{Name: "Bonus 500", Kind: Bonus500, Bonus: 500, Description: "Bonus 500 points if you pass the cheese", Quantity: 8},
	{Name: "Must Cut", Kind: MustBust, Bonus: 0, Description: "You roll until you cut the cheese but take all the points you are able to take until you cut the cheese", Quantity: 0},
	{Name: "Must Pass", Kind: MustFill, Bonus: 1000, Description: "You must pass the cheese but you get a 1000 point bonus", Quantity: 0},
	{Name: "Double Cheese", Kind: DoubleCheese, Bonus: 0, Description: "You must pass the cheese twice in a row. If you manage this, your score is doubled.", Quantity: 0},
	{Name: "No Cheese!", Kind: NoCheese, Bonus: 0, Description: "No cheese for you. You pass the turn without scoring.", Quantity: 0},
	{Name: "Cheese Strikes Back!", Kind: CheeseStrikesBack, Bonus: -2500, Description: "You must pass the cheese. If you do, the leader (or the people tied for the lead) will lose 2500 points.", Quantity: 0},
}

// Lookup finds a card by kind
func Lookup(k Kind) (Card, bool) {
	for _, c := range Catalogue {
		if c.Kind == k {
			return c, true
		}
	}
	return Card{}, false
}

// Deck represents a pile of face down cards; the top card is the last one
type Deck []Kind

// NewDeck builds an unshuffled deck with every dealt card in the catalogue
func NewDeck() Deck {
	d := Deck{}
	for _, c := range Catalogue {
		for i := 0; i < c.Quantity; i++ {
			d = append(d, c.Kind)
		}
	}
	return d
}

// Shuffle shuffles the deck using rng
func (d Deck) Shuffle(rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Draw takes the top card off the deck
func (d *Deck) Draw() (Kind, bool) {
	n := len(*d)
	if n == 0 {
		return "", false
	}
	top := (*d)[n-1]
	*d = (*d)[:n-1]
	return top, true
}

// Strings converts the deck to its persisted form
func (d Deck) Strings() []string {
	out := make([]string, len(d))
	for i, k := range d {
		out[i] = string(k)
	}
	return out
}

// FromStrings rebuilds a deck from its persisted form
func FromStrings(kinds []string) Deck {
	d := make(Deck, len(kinds))
	for i, k := range kinds {
		d[i] = Kind(k)
	}
	return d
}

// Draw gives the current player the top card of the game's deck.
// Only one card may be drawn per turn, and only before the first roll.
func Draw(s game.GameState) (game.GameState, error) {
	if s.MacroState != game.InProgress {
		return s, game.ErrGameNotInProgress
	}
	if s.CurrentCard != "" {
		return s, ErrCardAlreadyDrawn
	}
	if s.Rolling || s.TurnState != game.Rolling || len(s.ScoringDice) > 0 {
		return s, ErrTooLateToDraw
	}

	next := s.Clone()
	d := FromStrings(next.Deck)
	top, ok := d.Draw()
	if !ok {
		return s, ErrDeckEmpty
	}
	next.Deck = d.Strings()
	next.CurrentCard = string(top)
	return next, nil
}

// PassBonus is a game.Bonus paying out the current card when the player
// passed the cheese. Penalty cards are not applied here.
func PassBonus(s game.GameState) int {
	if s.CurrentCard == "" || !game.PassedTheCheese(s) {
		return 0
	}
	c, ok := Lookup(Kind(s.CurrentCard))
	if !ok || c.Bonus < 0 {
		return 0
	}
	return c.Bonus
}
