package protocol

import (
	"github.com/minaorangina/cheese/game"
)

// InboundMessage is a message from a player's connection to the game
type InboundMessage struct {
	Command  Cmd   `json:"command"`
	Decision []int `json:"decision"`
}

// OutboundMessage is a message from the game to a player's connection
type OutboundMessage struct {
	Command         Cmd             `json:"command"`
	GameID          string          `json:"gameID"`
	State           *game.GameState `json:"state,omitempty"`
	PassedTheCheese bool            `json:"passedTheCheese"`
	CutTheCheese    bool            `json:"cutTheCheese"`
	Error           string          `json:"error,omitempty"`
}

// StateMessage wraps a snapshot with the turn flags a client renders
func StateMessage(gameID string, s game.GameState) OutboundMessage {
	return OutboundMessage{
		Command:         State,
		GameID:          gameID,
		State:           &s,
		PassedTheCheese: game.PassedTheCheese(s),
		CutTheCheese:    game.CutTheCheese(s),
	}
}

func ErrorMessage(gameID string, err error) OutboundMessage {
	return OutboundMessage{
		Command: Error,
		GameID:  gameID,
		Error:   err.Error(),
	}
}
