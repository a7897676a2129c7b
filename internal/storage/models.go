package storage

import (
	"time"

	"gorm.io/gorm"
)

// GameRecord is one submitted match result. A session may submit many
// records (one per replay); the leaderboard groups them back to the best
// run per session.
type GameRecord struct {
	gorm.Model
	SessionID   string    `json:"session_id" gorm:"index"`
	Name        string    `json:"name"`
	FinalRound  int       `json:"final_round"`
	TotalAction int       `json:"total_action"`
	GovBar      int       `json:"gov_bar"`
	BusBar      int       `json:"bus_bar"`
	WorBar      int       `json:"wor_bar"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int       `json:"duration"`
	Ending      string    `json:"ending" gorm:"index"`
}

func (GameRecord) TableName() string { return "game_records" }
