package game

import (
	"fmt"

	"github.com/minaorangina/cheese/dice"
)

// DocumentVersion is written into every GameState this engine creates
const DocumentVersion = 1

// MacroState is the overall phase of a game
// waiting -> players are joining
// inProgress -> turns are being played
// gameOver -> somebody reached the score goal
type MacroState int

const (
	Waiting MacroState = iota
	InProgress
	GameOver
)

var macroStateNames = []string{
	"waiting",
	"inProgress",
	"gameOver",
}

func (m MacroState) String() string {
	if m < 0 || int(m) >= len(macroStateNames) {
		return ""
	}
	return macroStateNames[m]
}

func (m MacroState) MarshalText() ([]byte, error) {
	name := m.String()
	if name == "" {
		return nil, fmt.Errorf("unknown macro state %d", int(m))
	}
	return []byte(name), nil
}

func (m *MacroState) UnmarshalText(text []byte) error {
	for i, name := range macroStateNames {
		if name == string(text) {
			*m = MacroState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown macro state %q", string(text))
}

// TurnState is the sub-phase of the active turn
type TurnState int

const (
	Rolling TurnState = iota
	SettingAside
	Deciding
)

var turnStateNames = []string{
	"rolling",
	"settingAside",
	"deciding",
}

func (ts TurnState) String() string {
	if ts < 0 || int(ts) >= len(turnStateNames) {
		return ""
	}
	return turnStateNames[ts]
}

func (ts TurnState) MarshalText() ([]byte, error) {
	name := ts.String()
	if name == "" {
		return nil, fmt.Errorf("unknown turn state %d", int(ts))
	}
	return []byte(name), nil
}

func (ts *TurnState) UnmarshalText(text []byte) error {
	for i, name := range turnStateNames {
		if name == string(text) {
			*ts = TurnState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown turn state %q", string(text))
}

// Player is a member of a game's roster
type Player struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameState is the whole persisted document for one game.
// Transitions never modify a GameState in place; they return a new one.
type GameState struct {
	Version       int        `json:"version"`
	CreatedBy     string     `json:"createdBy"`
	MaxPlayers    int        `json:"maxPlayers"`
	ScoreGoal     int        `json:"scoreGoal"`
	MacroState    MacroState `json:"macroState"`
	Players       []Player   `json:"players"`
	CurrentPlayer int        `json:"currentPlayer"`
	TurnState     TurnState  `json:"turnState"`
	DiceValues    []int      `json:"diceValues"`
	ScoringDice   []int      `json:"scoringDice"`
	TurnScore     int        `json:"turnScore"`
	Rolling       bool       `json:"rolling"`

	// bonus card extension
	Deck        []string `json:"deck,omitempty"`
	CurrentCard string   `json:"currentCard,omitempty"`
}

// Clone returns a deep copy of s
func (s GameState) Clone() GameState {
	c := s
	c.Players = append([]Player{}, s.Players...)
	c.DiceValues = append([]int{}, s.DiceValues...)
	c.ScoringDice = append([]int{}, s.ScoringDice...)
	if s.Deck != nil {
		c.Deck = append([]string{}, s.Deck...)
	}
	return c
}

// CurrentPlayer returns the player whose turn it is
func CurrentPlayer(s GameState) (Player, bool) {
	idx := s.CurrentPlayer - 1
	if idx < 0 || idx >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[idx], true
}

// IsPlayer reports whether uid has joined the game
func IsPlayer(s GameState, uid string) bool {
	for _, p := range s.Players {
		if p.UID == uid {
			return true
		}
	}
	return false
}

// Winner returns the winning player once the game is over
func Winner(s GameState) (Player, bool) {
	if s.MacroState != GameOver {
		return Player{}, false
	}
	return CurrentPlayer(s)
}

func freshDice() []int {
	values := make([]int, dice.NumDice)
	for i := range values {
		values[i] = initialDieValue
	}
	return values
}
