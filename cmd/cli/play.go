package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/cards"
	"github.com/minaorangina/cheese/game"
)

const helpText = `Commands:
  r          roll the dice
  s 0 2 3    set aside the dice at these positions
  b          bank your turn score and pass the dice on
  c          cut the cheese: give up this turn's points
  d          draw a bonus card before your first roll
  q          quit
`

// SendText writes formatted text to out
func SendText(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, format, args...)
}

// play runs a hot-seat game until someone wins or the input runs out
func play(ctx context.Context, ss *cheese.Sessions, gameID string, in io.Reader, out io.Writer) error {
	reader := bufio.NewScanner(in)
	SendText(out, helpText)

	for {
		s, err := ss.Load(ctx, gameID)
		if err != nil {
			return err
		}

		if winner, ok := game.Winner(s); ok {
			SendText(out, "%s", buildScoresText(s))
			SendText(out, "%s wins with %d points!\n", winner.Name, winner.Score)
			return nil
		}

		current, _ := game.CurrentPlayer(s)
		SendText(out, "%s", buildTurnText(s))
		SendText(out, "%s> ", current.Name)

		if !reader.Scan() {
			SendText(out, "\nbye\n")
			return reader.Err()
		}

		fields := strings.Fields(reader.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "q" {
			SendText(out, "bye\n")
			return nil
		}

		if err := runCommand(ctx, ss, gameID, current.UID, fields, out); err != nil {
			SendText(out, "%s\n", describeError(err))
		}
	}
}

func runCommand(ctx context.Context, ss *cheese.Sessions, gameID, uid string, fields []string, out io.Writer) error {
	switch fields[0] {
	case "r":
		if _, err := ss.PreRoll(ctx, gameID, uid); err != nil {
			return err
		}
		s, err := ss.PostRoll(ctx, gameID)
		if err != nil {
			return err
		}
		SendText(out, "You rolled %s\n", buildDiceText(s.DiceValues))
		if game.CutTheCheese(s) {
			SendText(out, "Nothing scores. You cut the cheese!\n")
			_, err = ss.EndTurn(ctx, gameID, uid, true)
			return err
		}

	case "s":
		indices, err := parseIndices(fields[1:])
		if err != nil {
			return err
		}
		s, err := ss.SetAside(ctx, gameID, uid, indices)
		if err != nil {
			return err
		}
		if game.PassedTheCheese(s) {
			SendText(out, "All six dice score. You passed the cheese!\n")
		}

	case "b":
		_, err := ss.EndTurn(ctx, gameID, uid, false)
		return err

	case "c":
		_, err := ss.EndTurn(ctx, gameID, uid, true)
		return err

	case "d":
		s, err := ss.DrawCard(ctx, gameID, uid)
		if err != nil {
			return err
		}
		if c, ok := cards.Lookup(cards.Kind(s.CurrentCard)); ok {
			SendText(out, "You drew %s: %s\n", c.Name, c.Description)
		}

	default:
		SendText(out, helpText)
	}

	return nil
}

func parseIndices(fields []string) ([]int, error) {
	if len(fields) == 0 {
		return nil, errors.New("say which dice to set aside, e.g. s 0 2")
	}

	indices := []int{}
	for _, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a dice position", f)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func describeError(err error) string {
	switch {
	case errors.Is(err, cheese.ErrRollFirst):
		return "Roll first."
	case errors.Is(err, cheese.ErrNoScoringDice):
		return "Only set aside dice that score."
	case errors.Is(err, cards.ErrCardAlreadyDrawn):
		return "You already have a card this turn."
	case errors.Is(err, cards.ErrTooLateToDraw):
		return "Cards can only be drawn before your first roll."
	case errors.Is(err, cards.ErrDeckEmpty):
		return "There are no cards to draw."
	}
	return err.Error()
}

func buildDiceText(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d:[%d]", i, v)
	}
	return strings.Join(parts, " ")
}

func buildScoresText(s game.GameState) string {
	var b strings.Builder
	for _, p := range s.Players {
		fmt.Fprintf(&b, "  %-12s %6d\n", p.Name, p.Score)
	}
	return b.String()
}

func buildTurnText(s game.GameState) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(buildScoresText(s))
	fmt.Fprintf(&b, "Goal: %d   Turn score: %d\n", s.ScoreGoal, s.TurnScore)
	if len(s.ScoringDice) > 0 {
		fmt.Fprintf(&b, "Set aside: %v\n", s.ScoringDice)
	}
	if s.TurnState != game.Rolling {
		fmt.Fprintf(&b, "Dice: %s\n", buildDiceText(s.DiceValues))
	}
	if c, ok := cards.Lookup(cards.Kind(s.CurrentCard)); ok {
		fmt.Fprintf(&b, "Card: %s\n", c.Name)
	}
	return b.String()
}
