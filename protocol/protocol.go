package protocol

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	State
	Error
	// player actions
	Roll
	SetAside // Decision holds indices into the rollable dice
	EndTurn
	CutTheCheese // ends the turn forfeiting the turn score
	Start
	DrawCard
)

var CmdNames = map[Cmd]string{
	Null:         "Null",
	State:        "State",
	Error:        "Error",
	Roll:         "Roll",
	SetAside:     "SetAside",
	EndTurn:      "EndTurn",
	CutTheCheese: "CutTheCheese",
	Start:        "Start",
	DrawCard:     "DrawCard",
}

var NameToCmd = map[string]Cmd{
	"Null":         Null,
	"State":        State,
	"Error":        Error,
	"Roll":         Roll,
	"SetAside":     SetAside,
	"EndTurn":      EndTurn,
	"CutTheCheese": CutTheCheese,
	"Start":        Start,
	"DrawCard":     DrawCard,
}

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return "Unknown"
}
