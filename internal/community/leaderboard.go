package community

import (
	"context"

	"basari/internal/domain/leaderboard"
)

const DefaultLeaderboardLimit = 50

// Leaderboard ranks every qualifying contributor and returns the top limit.
// limit <= 0 returns everyone.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]leaderboard.Standing, error) {
	contributors, err := s.repos.Users.ListContributors(ctx)
	if err != nil {
		return nil, err
	}
	ranked := leaderboard.Rank(contributors)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// UserStanding returns the rank, badge and next badge of one user. Rank is
// zero when the user does not qualify for the leaderboard.
func (s *Service) UserStanding(ctx context.Context, userID int64) (leaderboard.Standing, error) {
	u, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return leaderboard.Standing{}, notFound(err)
	}
	contributors, err := s.repos.Users.ListContributors(ctx)
	if err != nil {
		return leaderboard.Standing{}, err
	}
	for _, st := range leaderboard.Rank(contributors) {
		if st.UserID == userID {
			return st, nil
		}
	}
	return leaderboard.Unranked(*u), nil
}
