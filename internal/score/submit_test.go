package score

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/engine"
	"github.com/tqdat410/balance-of-interests/internal/game"
	"github.com/tqdat410/balance-of-interests/internal/verification"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(`{"success":true}`)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func finishedResult(started time.Time) engine.Result {
	return engine.Result{
		SessionID:     "session-1",
		GameSessionID: "nonce-1",
		FinalRound:    30,
		Bars: game.Bars{
			game.Government: 25,
			game.Businesses: 25,
			game.Workers:    25,
		},
		TotalActions: 90,
		StartedAt:    started,
		Ending:       game.EndingHarmony,
	}
}

func TestBuildPayloadSignsResult(t *testing.T) {
	started := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	now := started.Add(600 * time.Second)

	p := BuildPayload(finishedResult(started), "Alice", "secret", now)

	if p.Duration != 600 {
		t.Fatalf("duration = %d, want 600", p.Duration)
	}
	if p.Ending != string(game.EndingHarmony) {
		t.Fatalf("ending = %q, want %q", p.Ending, game.EndingHarmony)
	}
	if p.StartTime != "2026-03-14T12:00:00Z" {
		t.Fatalf("start_time = %q", p.StartTime)
	}
	ok := verification.VerifySignature(verification.SignatureData{
		GameSessionID: p.GameSessionID,
		FinalRound:    p.FinalRound,
		GovBar:        p.GovBar,
		BusBar:        p.BusBar,
		WorBar:        p.WorBar,
		Duration:      p.Duration,
		Ending:        game.Ending(p.Ending),
	}, p.Signature, "secret")
	if !ok {
		t.Fatal("payload signature does not verify under the same secret")
	}
}

func TestSubmitPostsToSubmitScoreEndpoint(t *testing.T) {
	var gotURL, gotContentType string
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotContentType = r.Header.Get("Content-Type")
		return jsonResponse(http.StatusOK), nil
	})}
	s := NewSubmitter("http://example.test", client)
	if err := s.Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotURL != "http://example.test/api/submit-score" {
		t.Fatalf("url = %q", gotURL)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
}

func TestSubmitIsIdempotentAfterSuccess(t *testing.T) {
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK), nil
	})}
	s := NewSubmitter("http://example.test", client)
	if err := s.Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if err := s.Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("requests sent = %d, want 1", calls)
	}
}

func TestSubmitAllowsRetryAfterNetworkFailure(t *testing.T) {
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return jsonResponse(http.StatusOK), nil
	})}
	s := NewSubmitter("http://example.test", client)
	if err := s.Submit(context.Background(), Payload{}); err == nil {
		t.Fatal("first Submit succeeded despite network failure")
	}
	if err := s.Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if calls != 2 {
		t.Fatalf("requests sent = %d, want 2", calls)
	}
}

func TestSubmitDoesNotRetryAfterServerRejection(t *testing.T) {
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusForbidden), nil
	})}
	s := NewSubmitter("http://example.test", client)
	if err := s.Submit(context.Background(), Payload{}); err == nil {
		t.Fatal("Submit succeeded despite 403")
	}
	// The server already saw this payload; resubmitting cannot help.
	if err := s.Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("post-rejection Submit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("requests sent = %d, want 1", calls)
	}
}
