package api

import (
	"github.com/tqdat410/balance-of-interests/internal/service"
	"github.com/tqdat410/balance-of-interests/internal/storage"
)

// ScoreHandler groups the score-related HTTP handlers.
type ScoreHandler struct {
	repo        storage.Repository
	secret      string
	leaderboard *service.LeaderboardService
}

// NewScoreHandler creates a handler backed by the given repository and
// signing secret.
func NewScoreHandler(repo storage.Repository, secret string) *ScoreHandler {
	return &ScoreHandler{
		repo:        repo,
		secret:      secret,
		leaderboard: service.NewLeaderboardService(repo),
	}
}
