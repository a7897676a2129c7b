package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/game"
	"github.com/tqdat410/balance-of-interests/internal/storage"
	"github.com/tqdat410/balance-of-interests/internal/verification"
)

// Integrity failures are deliberately indistinguishable at the API
// boundary (uniform 403); the distinct sentinels below exist for logging
// and tests.
var (
	ErrInvalidSignature       = errors.New("signature verification failed")
	ErrImplausibleProgression = errors.New("progression checks failed")
	ErrImplausibleTiming      = errors.New("timestamp checks failed")
)

// Submission is a fully parsed submit-score request.
type Submission struct {
	SessionID     string
	GameSessionID string
	Name          string
	FinalRound    int
	TotalAction   int
	GovBar        int
	BusBar        int
	WorBar        int
	StartTime     time.Time
	EndTime       time.Time
	Duration      int
	Ending        game.Ending
	Signature     string
}

// SubmitScore runs the server-side acceptance pipeline: recompute the
// signature, check progression plausibility, check the timing window,
// validate the display name, then persist. Verification is stateless per
// request; nothing here touches match state.
func SubmitScore(repo storage.Repository, secret string, sub Submission) (*storage.GameRecord, error) {
	ok := verification.VerifySignature(verification.SignatureData{
		GameSessionID: sub.GameSessionID,
		FinalRound:    sub.FinalRound,
		GovBar:        sub.GovBar,
		BusBar:        sub.BusBar,
		WorBar:        sub.WorBar,
		Duration:      sub.Duration,
		Ending:        sub.Ending,
	}, sub.Signature, secret)
	if !ok {
		return nil, ErrInvalidSignature
	}

	if err := verification.ValidateProgression(verification.ProgressionData{
		FinalRound: sub.FinalRound,
		GovBar:     sub.GovBar,
		BusBar:     sub.BusBar,
		WorBar:     sub.WorBar,
		Ending:     sub.Ending,
	}); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrImplausibleProgression, err)
	}

	if err := verification.ValidateTimestamps(sub.StartTime, sub.EndTime, sub.Duration); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrImplausibleTiming, err)
	}

	// Client-side name checks are trivially bypassable, so the denylist is
	// enforced here as well.
	name, err := verification.ValidateName(sub.Name)
	if err != nil {
		return nil, err
	}

	rec := &storage.GameRecord{
		SessionID:   sub.SessionID,
		Name:        name,
		FinalRound:  sub.FinalRound,
		TotalAction: sub.TotalAction,
		GovBar:      sub.GovBar,
		BusBar:      sub.BusBar,
		WorBar:      sub.WorBar,
		StartTime:   sub.StartTime,
		EndTime:     sub.EndTime,
		Duration:    sub.Duration,
		Ending:      string(sub.Ending),
	}
	if err := repo.InsertRecord(rec); err != nil {
		return nil, fmt.Errorf("insert game record: %w", err)
	}
	return rec, nil
}
