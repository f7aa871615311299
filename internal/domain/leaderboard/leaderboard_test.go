package leaderboard

import (
	"testing"

	"basari/internal/domain/users"
)

func TestDeriveBadgeThresholds(t *testing.T) {
	cases := map[int]Badge{
		0:    BadgeNone,
		2:    BadgeNone,
		3:    BadgeBronze,
		9:    BadgeBronze,
		10:   BadgeSilver,
		24:   BadgeSilver,
		25:   BadgeGold,
		49:   BadgeGold,
		50:   BadgePlatinum,
		99:   BadgePlatinum,
		100:  BadgeDiamond,
		5000: BadgeDiamond,
	}
	for count, want := range cases {
		if got := DeriveBadge(count); got != want {
			t.Fatalf("DeriveBadge(%d) = %s, want %s", count, got, want)
		}
	}
}

func TestDeriveBadgeMonotonic(t *testing.T) {
	order := map[Badge]int{BadgeNone: 0, BadgeBronze: 1, BadgeSilver: 2, BadgeGold: 3, BadgePlatinum: 4, BadgeDiamond: 5}
	prev := DeriveBadge(0)
	for n := 1; n <= 150; n++ {
		cur := DeriveBadge(n)
		if order[cur] < order[prev] {
			t.Fatalf("DeriveBadge(%d) = %s dropped below DeriveBadge(%d) = %s", n, cur, n-1, prev)
		}
		prev = cur
	}
}

func TestNextBadge(t *testing.T) {
	next, remaining, ok := NextBadge(9)
	if !ok || next != BadgeSilver || remaining != 1 {
		t.Fatalf("NextBadge(9) = %s, %d, %v", next, remaining, ok)
	}
	next, remaining, ok = NextBadge(0)
	if !ok || next != BadgeBronze || remaining != 3 {
		t.Fatalf("NextBadge(0) = %s, %d, %v", next, remaining, ok)
	}
	if _, _, ok := NextBadge(100); ok {
		t.Fatalf("NextBadge(100) should report no next tier")
	}
}

func TestRank(t *testing.T) {
	us := []users.User{
		{ID: 1, DisplayName: "שרה", ReviewCount: 12},
		{ID: 2, DisplayName: "אבי", ReviewCount: 30},
		{ID: 3, DisplayName: "דני", ReviewCount: 12},
		{ID: 4, DisplayName: "בני", ReviewCount: 12},
		{ID: 5, DisplayName: "Zed", ReviewCount: 0},
	}

	got := Rank(us)
	wantIDs := []int64{2, 4, 3, 1, 5}
	for i, id := range wantIDs {
		if got[i].UserID != id {
			t.Fatalf("Rank()[%d].UserID = %d, want %d (got %+v)", i, got[i].UserID, id, got)
		}
		if got[i].Rank != i+1 {
			t.Fatalf("Rank()[%d].Rank = %d, want %d", i, got[i].Rank, i+1)
		}
	}

	if got[0].Badge != BadgeGold || *got[0].NextBadge != BadgePlatinum || *got[0].RemainingNext != 20 {
		t.Fatalf("Rank()[0] badge data = %+v", got[0])
	}
	if us[0].ID != 1 {
		t.Fatalf("Rank() must not reorder its input")
	}
}

func TestUnranked(t *testing.T) {
	s := Unranked(users.User{ID: 7, ReviewCount: 150})
	if s.Rank != 0 || s.Badge != BadgeDiamond || s.NextBadge != nil || s.RemainingNext != nil {
		t.Fatalf("Unranked() = %+v", s)
	}
}
