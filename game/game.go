package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minaorangina/cheese/dice"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrNotYourTurn       = errors.New("it is not your turn")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrInvalidDiceIndex  = errors.New("invalid dice index")
	ErrGameFull          = errors.New("maximum number of players reached")
	ErrAlreadyJoined     = errors.New("user is already in the game")
	ErrNotGameCreator    = errors.New("only the game creator can start the game")
	ErrInvalidGameConfig = errors.New("invalid game configuration")
)

// placeholder face shown before the first roll of a turn
const initialDieValue = 1

// Bonus adds points to a turn's score delta when the turn is banked.
// It is evaluated against the state as it was before the turn ended.
type Bonus func(s GameState) int

// NewGameID returns a short game identifier
func NewGameID() string {
	return strings.Split(uuid.NewV4().String(), "-")[0]
}

// CreateGame builds the state of a brand new game
func CreateGame(maxPlayers, scoreGoal int, createdBy string) (string, GameState, error) {
	if maxPlayers < 1 {
		return "", GameState{}, fmt.Errorf("%w: max players must be at least 1", ErrInvalidGameConfig)
	}
	if scoreGoal < 1 {
		return "", GameState{}, fmt.Errorf("%w: score goal must be positive", ErrInvalidGameConfig)
	}

	s := GameState{
		Version:       DocumentVersion,
		CreatedBy:     createdBy,
		MaxPlayers:    maxPlayers,
		ScoreGoal:     scoreGoal,
		MacroState:    Waiting,
		Players:       []Player{},
		CurrentPlayer: 1,
		TurnState:     Rolling,
		DiceValues:    freshDice(),
		ScoringDice:   []int{},
		TurnScore:     0,
		Rolling:       false,
	}

	return NewGameID(), s, nil
}

// AddPlayer appends a new player to the roster
func AddPlayer(s GameState, name, uid string) (GameState, error) {
	if len(s.Players) >= s.MaxPlayers {
		return s, ErrGameFull
	}
	if IsPlayer(s, uid) {
		return s, ErrAlreadyJoined
	}

	next := s.Clone()
	next.Players = append(next.Players, Player{UID: uid, Name: name, Score: 0})
	return next, nil
}

// StartGame moves a waiting game into play.
// Only the creator may start it; no minimum number of players is enforced.
func StartGame(s GameState, actingUID string) (GameState, error) {
	if s.CreatedBy != actingUID {
		return s, ErrNotGameCreator
	}

	next := s.Clone()
	next.MacroState = InProgress
	return next, nil
}

// PreRoll opens the rolling window for the current player.
// It is a no-op once the game is over or while a roll is already underway.
func PreRoll(s GameState, actingUID string) (GameState, error) {
	current, ok := CurrentPlayer(s)
	if !ok || current.UID != actingUID {
		return s, ErrNotYourTurn
	}

	if s.MacroState == GameOver || s.Rolling {
		return s, nil
	}

	next := s.Clone()
	next.Rolling = true
	return next, nil
}

// PostRoll rolls every die that has not been set aside
func PostRoll(s GameState, r dice.Roller) GameState {
	next := s.Clone()
	next.DiceValues = dice.RollN(r, dice.NumDice-len(s.ScoringDice))
	next.Rolling = false
	next.TurnState = SettingAside
	return next
}

// SetAsideDice moves the dice at indices from the rollable pool into the
// scoring dice and adds their value to the turn score.
// Indices are all checked before anything changes.
func SetAsideDice(s GameState, indices []int) (GameState, error) {
	if s.MacroState != InProgress {
		return s, ErrGameNotInProgress
	}

	selected := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.DiceValues) {
			return s, fmt.Errorf("%w: %d", ErrInvalidDiceIndex, idx)
		}
		if selected[idx] {
			return s, fmt.Errorf("%w: %d selected twice", ErrInvalidDiceIndex, idx)
		}
		selected[idx] = true
	}

	chosen := make([]int, 0, len(indices))
	for _, idx := range indices {
		chosen = append(chosen, s.DiceValues[idx])
	}

	res, err := dice.Score(chosen)
	if err != nil {
		return s, err
	}

	remaining := []int{}
	for i, v := range s.DiceValues {
		if !selected[i] {
			remaining = append(remaining, v)
		}
	}

	next := s.Clone()
	next.DiceValues = remaining
	next.ScoringDice = append(next.ScoringDice, chosen...)
	next.TurnScore += res.TotalScore
	next.TurnState = Deciding
	return next, nil
}

// EndTurn banks (or, when the cheese was cut, discards) the turn score and
// hands the dice to the next player. The game ends if the current player
// reached the score goal, in which case they stay current.
func EndTurn(s GameState, cutTheCheese bool, bonuses ...Bonus) (GameState, error) {
	if s.MacroState != InProgress {
		return s, ErrGameNotInProgress
	}
	idx := s.CurrentPlayer - 1
	if idx < 0 || idx >= len(s.Players) {
		return s, fmt.Errorf("%w: no current player", ErrGameNotInProgress)
	}

	next := s.Clone()
	if !cutTheCheese {
		delta := s.TurnScore
		for _, bonus := range bonuses {
			if bonus != nil {
				delta += bonus(s)
			}
		}
		next.Players[idx].Score += delta
	}

	gameOver := next.Players[idx].Score >= s.ScoreGoal
	if gameOver {
		next.MacroState = GameOver
	} else {
		next.MacroState = InProgress
		next.CurrentPlayer = (s.CurrentPlayer % len(s.Players)) + 1
	}

	next.TurnScore = 0
	next.ScoringDice = []int{}
	next.DiceValues = freshDice()
	next.TurnState = Rolling
	next.CurrentCard = ""
	return next, nil
}

// PassedTheCheese reports whether every die has been set aside this turn
func PassedTheCheese(s GameState) bool {
	return len(s.DiceValues) == 0
}

// CutTheCheese reports whether the last roll left nothing to score,
// which forces the turn to end with no points banked.
func CutTheCheese(s GameState) bool {
	return s.TurnState == SettingAside && !dice.HasScore(s.DiceValues)
}
