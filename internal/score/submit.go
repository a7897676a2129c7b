// Package score builds and submits signed match results. Submission is
// best-effort: the match outcome is already final and displayed from local
// state, so a failed submit never affects gameplay.
package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/engine"
	"github.com/tqdat410/balance-of-interests/internal/game"
	"github.com/tqdat410/balance-of-interests/internal/verification"
)

// Payload is the submit-score request body.
type Payload struct {
	SessionID     string `json:"session_id"`
	GameSessionID string `json:"game_session_id"`
	Name          string `json:"name"`
	FinalRound    int    `json:"final_round"`
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

// BuildPayload packages a finished match for submission, computing the
// elapsed duration against now and signing the result with the shared
// secret.
func BuildPayload(res engine.Result, playerName, secret string, now time.Time) Payload {
	duration := int(now.Sub(res.StartedAt) / time.Second)
	sig := verification.Sign(verification.SignatureData{
		GameSessionID: res.GameSessionID,
		FinalRound:    res.FinalRound,
		GovBar:        res.Bars[game.Government],
		BusBar:        res.Bars[game.Businesses],
		WorBar:        res.Bars[game.Workers],
		Duration:      duration,
		Ending:        res.Ending,
	}, secret)
	return Payload{
		SessionID:     res.SessionID,
		GameSessionID: res.GameSessionID,
		Name:          playerName,
		FinalRound:    res.FinalRound,
		TotalAction:   res.TotalActions,
		GovBar:        res.Bars[game.Government],
		BusBar:        res.Bars[game.Businesses],
		WorBar:        res.Bars[game.Workers],
		StartTime:     res.StartedAt.UTC().Format(time.RFC3339),
		EndTime:       now.UTC().Format(time.RFC3339),
		Duration:      duration,
		Ending:        string(res.Ending),
		Signature:     sig,
	}
}

// Submitter performs the at-most-one submission for a single match. The
// idempotency flag makes duplicate triggers a no-op; a network failure
// clears it so a later manual retry can go through, but there is no
// automatic retry loop.
type Submitter struct {
	baseURL string
	client  *http.Client

	mu        sync.Mutex
	submitted bool
}

// NewSubmitter creates a submitter for the given server base URL. A nil
// client falls back to a default with a short timeout.
func NewSubmitter(baseURL string, client *http.Client) *Submitter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Submitter{baseURL: baseURL, client: client}
}

// Submit posts the payload to the submit-score endpoint. Repeated calls
// after a successful or accepted-by-server attempt do nothing.
func (s *Submitter) Submit(ctx context.Context, p Payload) error {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return nil
	}
	s.submitted = true
	s.mu.Unlock()

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	url := s.baseURL + constants.RouteAPIPrefix + constants.RouteSubmitScore
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// The request never reached the server; allow a retry.
		s.mu.Lock()
		s.submitted = false
		s.mu.Unlock()
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The server saw and rejected the submission; retrying the same
		// payload cannot succeed, so the flag stays set.
		return fmt.Errorf("submit-score returned status %d", resp.StatusCode)
	}
	return nil
}
