package service

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tqdat410/balance-of-interests/internal/storage"
)

var ErrInvalidPagination = errors.New("invalid pagination parameters")

const (
	MinPageSize = 1
	MaxPageSize = 100
)

// LeaderboardPage is one page of grouped leaderboard rows.
type LeaderboardPage struct {
	Rows       []storage.GameRecord
	Page       int
	PageSize   int
	TotalCount int64
	TotalPages int
}

// LeaderboardService serves paged leaderboard queries. Identical
// concurrent queries are deduplicated through a singleflight group so a
// popular page hits the store once.
type LeaderboardService struct {
	repo storage.Repository
	sf   singleflight.Group
}

func NewLeaderboardService(repo storage.Repository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// Fetch validates pagination bounds and returns the requested page.
func (s *LeaderboardService) Fetch(page, pageSize int, from, to *time.Time) (*LeaderboardPage, error) {
	if page < 1 || pageSize < MinPageSize || pageSize > MaxPageSize {
		return nil, ErrInvalidPagination
	}

	key := fmt.Sprintf("%d:%d:%s:%s", page, pageSize, timeKey(from), timeKey(to))
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, total, err := s.repo.Leaderboard(page, pageSize, from, to)
		if err != nil {
			return nil, err
		}
		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		return &LeaderboardPage{
			Rows:       rows,
			Page:       page,
			PageSize:   pageSize,
			TotalCount: total,
			TotalPages: totalPages,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LeaderboardPage), nil
}

func timeKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
