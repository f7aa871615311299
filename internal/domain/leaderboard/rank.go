package leaderboard

import (
	"sort"

	"basari/internal/domain/users"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Standing is a user's position on the leaderboard.
type Standing struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	City          string `json:"city,omitempty"`
	ReviewCount   int    `json:"review_count"`
	ArticleCount  int    `json:"article_count"`
	Badge         Badge  `json:"badge"`
	NextBadge     *Badge `json:"next_badge"`
	RemainingNext *int   `json:"remaining_to_next"`
}

// Tag is the collation locale used to break review-count ties by name.
var Tag = language.Hebrew

// Rank orders users by review count descending, then by display name under
// the locale collation, then by id, and assigns 1-based ranks.
func Rank(us []users.User) []Standing {
	sorted := append([]users.User(nil), us...)

	// A Collator is not safe for concurrent use, so each call builds its own.
	col := collate.New(Tag, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		if c := col.CompareString(a.DisplayName, b.DisplayName); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})

	out := make([]Standing, len(sorted))
	for i, u := range sorted {
		out[i] = standingOf(u, i+1)
	}
	return out
}

func standingOf(u users.User, rank int) Standing {
	s := Standing{
		Rank:         rank,
		UserID:       u.ID,
		DisplayName:  u.DisplayName,
		City:         u.City,
		ReviewCount:  u.ReviewCount,
		ArticleCount: u.ArticleCount,
		Badge:        DeriveBadge(u.ReviewCount),
	}
	if u.AvatarURL != nil {
		s.AvatarURL = *u.AvatarURL
	}
	if next, remaining, ok := NextBadge(u.ReviewCount); ok {
		s.NextBadge = &next
		s.RemainingNext = &remaining
	}
	return s
}

// Unranked describes a user who does not qualify for the leaderboard.
// Rank is zero.
func Unranked(u users.User) Standing {
	return standingOf(u, 0)
}
