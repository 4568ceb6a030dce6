package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tt := []struct {
		name string
		dice []int
		want Result
	}{
		{
			name: "no dice",
			dice: []int{},
			want: Result{TotalScore: 0, UnscoredDice: []int{}, ScoringDetails: []Detail{}},
		},
		{
			name: "straight",
			dice: []int{1, 2, 3, 4, 5, 6},
			want: Result{
				TotalScore:     1500,
				UnscoredDice:   []int{},
				ScoringDetails: []Detail{{Reason: "Straight", Values: []int{1, 2, 3, 4, 5, 6}, Points: 1500}},
			},
		},
		{
			name: "straight in any order",
			dice: []int{6, 4, 2, 5, 3, 1},
			want: Result{
				TotalScore:     1500,
				UnscoredDice:   []int{},
				ScoringDetails: []Detail{{Reason: "Straight", Values: []int{1, 2, 3, 4, 5, 6}, Points: 1500}},
			},
		},
		{
			name: "three 1s",
			dice: []int{1, 1, 1, 2, 3, 4},
			want: Result{
				TotalScore:     1000,
				UnscoredDice:   []int{2, 3, 4},
				ScoringDetails: []Detail{{Reason: "Three of a kind", Values: []int{1, 1, 1}, Points: 1000}},
			},
		},
		{
			name: "single 1 and single 5",
			dice: []int{1, 5, 2, 3, 6, 6},
			want: Result{
				TotalScore:   150,
				UnscoredDice: []int{2, 3, 6, 6},
				ScoringDetails: []Detail{
					{Reason: "Single 1s", Values: []int{1}, Points: 100},
					{Reason: "Single 5s", Values: []int{5}, Points: 50},
				},
			},
		},
		{
			name: "nothing scores",
			dice: []int{2, 3, 4, 6},
			want: Result{TotalScore: 0, UnscoredDice: []int{2, 3, 4, 6}, ScoringDetails: []Detail{}},
		},
		{
			name: "three 4s are worth 400",
			dice: []int{4, 2, 4, 4},
			want: Result{
				TotalScore:     400,
				UnscoredDice:   []int{2},
				ScoringDetails: []Detail{{Reason: "Three of a kind", Values: []int{4, 4, 4}, Points: 400}},
			},
		},
		{
			name: "four 5s: one triple and a single",
			dice: []int{5, 5, 5, 5},
			want: Result{
				TotalScore:   550,
				UnscoredDice: []int{},
				ScoringDetails: []Detail{
					{Reason: "Three of a kind", Values: []int{5, 5, 5}, Points: 500},
					{Reason: "Single 5s", Values: []int{5}, Points: 50},
				},
			},
		},
		{
			name: "six 1s: only one triple per face",
			dice: []int{1, 1, 1, 1, 1, 1},
			want: Result{
				TotalScore:   1300,
				UnscoredDice: []int{},
				ScoringDetails: []Detail{
					{Reason: "Three of a kind", Values: []int{1, 1, 1}, Points: 1000},
					{Reason: "Single 1s", Values: []int{1, 1, 1}, Points: 300},
				},
			},
		},
		{
			name: "two triples",
			dice: []int{2, 6, 2, 6, 2, 6},
			want: Result{
				TotalScore:   800,
				UnscoredDice: []int{},
				ScoringDetails: []Detail{
					{Reason: "Three of a kind", Values: []int{2, 2, 2}, Points: 200},
					{Reason: "Three of a kind", Values: []int{6, 6, 6}, Points: 600},
				},
			},
		},
		{
			name: "five dice with every face but one is not a straight",
			dice: []int{1, 2, 3, 4, 5},
			want: Result{
				TotalScore:   150,
				UnscoredDice: []int{2, 3, 4},
				ScoringDetails: []Detail{
					{Reason: "Single 1s", Values: []int{1}, Points: 100},
					{Reason: "Single 5s", Values: []int{5}, Points: 50},
				},
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Score(tc.dice)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreTooManyDice(t *testing.T) {
	for _, dice := range [][]int{
		{1, 2, 3, 4, 5, 6, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	} {
		_, err := Score(dice)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestScoreDoesNotModifyInput(t *testing.T) {
	dice := []int{6, 5, 4, 3, 2, 1}
	_, err := Score(dice)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, dice)
}

func TestHasScore(t *testing.T) {
	assert.True(t, HasScore([]int{2, 2, 5}))
	assert.True(t, HasScore([]int{3, 3, 3}))
	assert.False(t, HasScore([]int{2, 3, 4, 6}))
	assert.False(t, HasScore([]int{}))
}
