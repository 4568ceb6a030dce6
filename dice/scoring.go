package dice

import (
	"errors"
	"sort"
)

// ErrInvalidInput is returned when more dice are scored than a turn can hold
var ErrInvalidInput = errors.New("invalid number of dice")

const (
	ReasonStraight    = "Straight"
	ReasonThreeOfKind = "Three of a kind"
	ReasonSingleOnes  = "Single 1s"
	ReasonSingleFives = "Single 5s"
)

const (
	straightPoints   = 1500
	tripleOnesPoints = 1000
	tripleMultiplier = 100
	singleOnePoints  = 100
	singleFivePoints = 50
	diceInTriple     = 3
)

// Detail is one scoring combination found in a set of dice
type Detail struct {
	Reason string `json:"reason"`
	Values []int  `json:"values"`
	Points int    `json:"points"`
}

// Result is the breakdown of a set of dice
type Result struct {
	TotalScore     int      `json:"totalScore"`
	UnscoredDice   []int    `json:"unscoredDice"`
	ScoringDetails []Detail `json:"scoringDetails"`
}

// Score works out what a set of up to six dice is worth.
//
// Combinations are matched in order, each one consuming the dice it scores:
// a straight (all six faces once) short-circuits everything else, then one
// three of a kind per face, then leftover 1s, then leftover 5s. Dice that
// match nothing are returned in UnscoredDice in their original order.
func Score(dice []int) (Result, error) {
	if len(dice) > NumDice {
		return Result{}, ErrInvalidInput
	}

	res := Result{
		UnscoredDice:   []int{},
		ScoringDetails: []Detail{},
	}
	if len(dice) == 0 {
		return res, nil
	}

	if isStraight(dice) {
		res.TotalScore = straightPoints
		res.ScoringDetails = append(res.ScoringDetails, Detail{
			Reason: ReasonStraight,
			Values: []int{1, 2, 3, 4, 5, 6},
			Points: straightPoints,
		})
		return res, nil
	}

	used := make([]bool, len(dice))

	for face := MinFace; face <= MaxFace; face++ {
		idxs := indicesOf(dice, used, face)
		if len(idxs) < diceInTriple {
			continue
		}
		for _, i := range idxs[:diceInTriple] {
			used[i] = true
		}
		points := tripleValue(face)
		res.TotalScore += points
		res.ScoringDetails = append(res.ScoringDetails, Detail{
			Reason: ReasonThreeOfKind,
			Values: []int{face, face, face},
			Points: points,
		})
	}

	singles := []struct {
		face   int
		points int
		reason string
	}{
		{1, singleOnePoints, ReasonSingleOnes},
		{5, singleFivePoints, ReasonSingleFives},
	}
	for _, single := range singles {
		idxs := indicesOf(dice, used, single.face)
		if len(idxs) == 0 {
			continue
		}
		values := make([]int, 0, len(idxs))
		for _, i := range idxs {
			used[i] = true
			values = append(values, single.face)
		}
		points := single.points * len(idxs)
		res.TotalScore += points
		res.ScoringDetails = append(res.ScoringDetails, Detail{
			Reason: single.reason,
			Values: values,
			Points: points,
		})
	}

	for i, v := range dice {
		if !used[i] {
			res.UnscoredDice = append(res.UnscoredDice, v)
		}
	}

	return res, nil
}

// HasScore reports whether any combination can be made from dice
func HasScore(dice []int) bool {
	res, err := Score(dice)
	return err == nil && res.TotalScore > 0
}

func tripleValue(face int) int {
	if face == 1 {
		return tripleOnesPoints
	}
	return face * tripleMultiplier
}

func isStraight(dice []int) bool {
	if len(dice) != NumDice {
		return false
	}
	sorted := append([]int(nil), dice...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i+1 {
			return false
		}
	}
	return true
}

// indicesOf returns the positions of unused dice showing face
func indicesOf(dice []int, used []bool, face int) []int {
	idxs := []int{}
	for i, v := range dice {
		if !used[i] && v == face {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
