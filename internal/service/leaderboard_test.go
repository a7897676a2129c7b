package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tqdat410/balance-of-interests/internal/storage"
)

func TestLeaderboardFetchValidatesPagination(t *testing.T) {
	s := NewLeaderboardService(&mockRepository{})
	cases := []struct{ page, size int }{
		{0, 10},
		{-1, 10},
		{1, 0},
		{1, 101},
	}
	for _, tc := range cases {
		if _, err := s.Fetch(tc.page, tc.size, nil, nil); !errors.Is(err, ErrInvalidPagination) {
			t.Fatalf("Fetch(%d, %d) err = %v, want ErrInvalidPagination", tc.page, tc.size, err)
		}
	}
}

func TestLeaderboardFetchComputesTotalPages(t *testing.T) {
	repo := &mockRepository{
		rows:  []storage.GameRecord{{SessionID: "a"}, {SessionID: "b"}},
		total: 5,
	}
	s := NewLeaderboardService(repo)
	page, err := s.Fetch(1, 2, nil, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", page.TotalPages)
	}
	if page.TotalCount != 5 {
		t.Fatalf("total count = %d, want 5", page.TotalCount)
	}
	if len(page.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(page.Rows))
	}
	if page.Page != 1 || page.PageSize != 2 {
		t.Fatalf("page meta = %d/%d, want 1/2", page.Page, page.PageSize)
	}
}

func TestLeaderboardFetchEmptyStore(t *testing.T) {
	s := NewLeaderboardService(&mockRepository{})
	page, err := s.Fetch(1, 10, nil, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.TotalPages != 0 || page.TotalCount != 0 {
		t.Fatalf("empty store page = %+v, want zero totals", page)
	}
}

func TestLeaderboardFetchPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("database locked")
	s := NewLeaderboardService(&mockRepository{leaderboardErr: storeErr})
	if _, err := s.Fetch(1, 10, nil, nil); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want %v", err, storeErr)
	}
}

func TestLeaderboardFetchPassesDateFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockRepository{}
	s := NewLeaderboardService(repo)
	if _, err := s.Fetch(1, 10, &from, &to); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if repo.leaderboardCalls != 1 {
		t.Fatalf("store calls = %d, want 1", repo.leaderboardCalls)
	}
}
