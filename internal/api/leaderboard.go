package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/logging"
	"github.com/tqdat410/balance-of-interests/internal/service"
	"github.com/tqdat410/balance-of-interests/internal/storage"
)

type leaderboardRequest struct {
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
}

type leaderboardRow struct {
	ID          uint   `json:"id"`
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	FinalRound  int    `json:"final_round"`
	TotalAction int    `json:"total_action"`
	GovBar      int    `json:"gov_bar"`
	BusBar      int    `json:"bus_bar"`
	WorBar      int    `json:"wor_bar"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Duration    int    `json:"duration"`
	Ending      string `json:"ending"`
	CreatedAt   string `json:"created_at"`
}

// Leaderboard returns one page of grouped results: each session's best run.
func (h *ScoreHandler) Leaderboard(c *gin.Context) {
	var req leaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidPagination))
		return
	}

	from, err := parseOptionalTime(req.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidTimestamps))
		return
	}
	to, err := parseOptionalTime(req.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidTimestamps))
		return
	}

	page, err := h.leaderboard.Fetch(req.PageNumber, req.PageSize, from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidPagination))
			return
		}
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, fail(constants.ErrFailedLeaderboard))
		return
	}

	rows := make([]leaderboardRow, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, toLeaderboardRow(r))
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyData:    rows,
		constants.JSONKeyPagination: gin.H{
			"page":       page.Page,
			"pageSize":   page.PageSize,
			"totalCount": page.TotalCount,
			"totalPages": page.TotalPages,
		},
	})
}

func toLeaderboardRow(r storage.GameRecord) leaderboardRow {
	return leaderboardRow{
		ID:          r.ID,
		SessionID:   r.SessionID,
		Name:        r.Name,
		FinalRound:  r.FinalRound,
		TotalAction: r.TotalAction,
		GovBar:      r.GovBar,
		BusBar:      r.BusBar,
		WorBar:      r.WorBar,
		StartTime:   r.StartTime.UTC().Format(time.RFC3339),
		EndTime:     r.EndTime.UTC().Format(time.RFC3339),
		Duration:    r.Duration,
		Ending:      r.Ending,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
