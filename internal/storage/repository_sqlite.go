package storage

import (
	"time"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened GORM handle in the Repository
// interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) InsertRecord(rec *GameRecord) error {
	return r.db.Create(rec).Error
}

// endingRankSQL orders endings best-first: harmony beats survival beats
// failure. Used both to pick a session's best run and to order the page.
const endingRankSQL = "CASE ending WHEN 'HARMONY' THEN 0 WHEN 'SURVIVAL' THEN 1 ELSE 2 END"

// Leaderboard groups records to the best run per session (best ending
// class, then highest final round, then shortest duration) and pages over
// the grouped rows in the same order.
func (r *sqliteRepository) Leaderboard(page, pageSize int, from, to *time.Time) ([]GameRecord, int64, error) {
	filtered := r.db.Model(&GameRecord{})
	if from != nil {
		filtered = filtered.Where("created_at >= ?", *from)
	}
	if to != nil {
		filtered = filtered.Where("created_at <= ?", *to)
	}

	var total int64
	if err := filtered.Session(&gorm.Session{}).Distinct("session_id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ranked := filtered.Session(&gorm.Session{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY session_id ORDER BY " + endingRankSQL + ", final_round DESC, duration ASC) AS rank_in_session")

	var rows []GameRecord
	err := r.db.Table("(?) AS ranked", ranked).
		Where("rank_in_session = 1").
		Order(endingRankSQL + ", final_round DESC, duration ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
