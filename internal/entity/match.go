package entity

import "time"

type Match struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MatchResult struct {
	MatchID    string           `json:"match_id"`
	Rounds     int              `json:"rounds"`
	Wins       [PlayerCount]int `json:"wins"`
	Winner     *PlayerID        `json:"winner,omitempty"`
	FinishedAt time.Time        `json:"finished_at"`
}

func NewMatchResult(matchID string, state State, finishedAt time.Time) MatchResult {
	result := MatchResult{
		MatchID:    matchID,
		Rounds:     state.Rounds,
		FinishedAt: finishedAt,
	}

	for i, player := range state.Players {
		result.Wins[i] = player.Wins
	}

	if winner, ok := state.Leader(); ok {
		result.Winner = &winner
	}

	return result
}
