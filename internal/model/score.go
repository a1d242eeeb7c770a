package model

import "time"

// ZoneResult is a frozen copy of one zone's score at close-day time.
type ZoneResult struct {
	ZoneID    string  `json:"zoneId"`
	ZoneName  string  `json:"zoneName"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Base      float64 `json:"base"`
	Bonus     float64 `json:"bonus"`
	Penalty   float64 `json:"penalty"`
	Score     float64 `json:"score"`
}

// ScoreEntry is an immutable history record.
type ScoreEntry struct {
	ID         string       `json:"id"`
	Timestamp  time.Time    `json:"timestamp"`
	TotalScore float64      `json:"totalScore"`
	Zones      []ZoneResult `json:"zones"`
}

func (e ScoreEntry) Clone() ScoreEntry {
	c := e
	c.Zones = append([]ZoneResult{}, e.Zones...)
	return c
}
