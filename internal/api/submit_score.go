package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
	"github.com/tqdat410/balance-of-interests/internal/logging"
	"github.com/tqdat410/balance-of-interests/internal/service"
	"github.com/tqdat410/balance-of-interests/internal/verification"
)

type submitScoreRequest struct {
	SessionID     string `json:"session_id"`
	GameSessionID string `json:"game_session_id"`
	Name          string `json:"name"`
	FinalRound    *int   `json:"final_round"`
	TotalAction   int    `json:"total_action"`
	GovBar        int    `json:"gov_bar"`
	BusBar        int    `json:"bus_bar"`
	WorBar        int    `json:"wor_bar"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Duration      int    `json:"duration"`
	Ending        string `json:"ending"`
	Signature     string `json:"signature"`
}

// SubmitScore verifies and persists one match result. All integrity
// failures answer with the same generic 403 so the verification logic
// cannot be binary-searched from outside.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, fail(constants.ErrServerConfig))
		return
	}

	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidRequest))
		return
	}
	if req.SessionID == "" || req.GameSessionID == "" || req.Name == "" ||
		req.FinalRound == nil || req.Signature == "" {
		c.JSON(http.StatusBadRequest, fail(constants.ErrMissingFields))
		return
	}

	startTime, err1 := time.Parse(time.RFC3339, req.StartTime)
	endTime, err2 := time.Parse(time.RFC3339, req.EndTime)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, fail(constants.ErrInvalidTimestamps))
		return
	}
	if !endTime.After(startTime) {
		c.JSON(http.StatusBadRequest, fail(constants.ErrEndBeforeStart))
		return
	}

	rec, err := service.SubmitScore(h.repo, h.secret, service.Submission{
		SessionID:     req.SessionID,
		GameSessionID: req.GameSessionID,
		Name:          req.Name,
		FinalRound:    *req.FinalRound,
		TotalAction:   req.TotalAction,
		GovBar:        req.GovBar,
		BusBar:        req.BusBar,
		WorBar:        req.WorBar,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      req.Duration,
		Ending:        game.Ending(req.Ending),
		Signature:     req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature),
			errors.Is(err, service.ErrImplausibleProgression),
			errors.Is(err, service.ErrImplausibleTiming):
			// Do not leak which check failed.
			logging.Info("score submission rejected", logging.Fields{
				constants.LogFieldSessionID: req.SessionID,
				constants.LogFieldNonce:     req.GameSessionID,
				"reason":                    err.Error(),
			})
			c.JSON(http.StatusForbidden, fail(constants.ErrInvalidRequest))
		case errors.Is(err, verification.ErrNameLength):
			c.JSON(http.StatusBadRequest, fail(verification.ErrNameLength.Error()))
		case errors.Is(err, verification.ErrNameNotAllowed):
			c.JSON(http.StatusBadRequest, fail(constants.ErrNameNotAllowed))
		default:
			logging.Error("failed to save score", err, logging.Fields{
				constants.LogFieldSessionID: req.SessionID,
			})
			c.JSON(http.StatusInternalServerError, fail(constants.ErrFailedSaveScore))
		}
		return
	}

	logging.Info("score submitted", logging.Fields{
		constants.LogFieldRecordID: rec.ID,
		constants.LogFieldEnding:   rec.Ending,
		constants.LogFieldRound:    rec.FinalRound,
	})
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeySuccess: true,
		constants.JSONKeyData: gin.H{
			"id":      rec.ID,
			"message": "Score submitted successfully",
		},
	})
}

func fail(msg string) gin.H {
	return gin.H{
		constants.JSONKeySuccess: false,
		constants.JSONKeyError:   msg,
	}
}
