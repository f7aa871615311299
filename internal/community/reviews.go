package community

import (
	"context"
	"fmt"

	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/raffles"
	"basari/internal/domain/storage"
	venuereviews "basari/internal/domain/venuereview"
)

const MaxReviewImages = 5

type ReviewInput struct {
	Ratings       venuereviews.Ratings
	Body          string   `validate:"max=5000"`
	ImageURLs     []string `validate:"max=5,dive,url"`
	VerifiedVisit bool
}

// ReviewPatch carries the fields of an edit; nil fields are left unchanged.
type ReviewPatch struct {
	Ratings       *venuereviews.Ratings `validate:"omitempty"`
	Body          *string               `validate:"omitempty,max=5000"`
	ImageURLs     *[]string             `validate:"omitempty,max=5,dive,url"`
	VerifiedVisit *bool
}

// SubmitReview stores a review, re-derives the venue aggregate and bumps the
// author's review counter in one transaction. A raffle ticket is issued
// afterwards; failing to issue it does not fail the review.
func (s *Service) SubmitReview(ctx context.Context, caller *Caller, venueID int64, in ReviewInput) (*venuereviews.Review, error) {
	if err := authorize(caller, accesscontrol.ActionCreateReview); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	review := &venuereviews.Review{
		VenueID:       venueID,
		UserID:        caller.ID,
		Ratings:       in.Ratings,
		Body:          in.Body,
		ImageURLs:     in.ImageURLs,
		VerifiedVisit: in.VerifiedVisit,
	}

	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		if _, err := r.Venues.LockByID(ctx, venueID); err != nil {
			return err
		}
		if err := r.Reviews.CreateReview(ctx, review); err != nil {
			return err
		}
		if err := recomputeAggregate(ctx, r, venueID); err != nil {
			return err
		}
		return r.Users.AdjustReviewCount(ctx, caller.ID, 1)
	})
	if err != nil {
		return nil, notFound(err)
	}
	s.invalidate(ctx)

	if _, err := s.IssueRaffleEntry(ctx, caller.ID, raffles.SourceReview, review.ID); err != nil {
		s.logger.Errorw("raffle entry issuance failed", "user_id", caller.ID, "review_id", review.ID, "error", err)
	}
	return review, nil
}

// EditReview applies patch to a review. The aggregate is recomputed only
// when the overall rating changes.
func (s *Service) EditReview(ctx context.Context, caller *Caller, reviewID int64, patch ReviewPatch) (*venuereviews.Review, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	current, err := s.repos.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	if !accesscontrol.CanModify(caller.Role, accesscontrol.ActionEditReview, current.UserID == caller.ID) {
		return nil, ErrUnauthorized
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, invalid(err)
	}

	var updated *venuereviews.Review
	err = s.tx.WithTx(ctx, func(r *storage.Repos) error {
		if _, err := r.Venues.LockByID(ctx, current.VenueID); err != nil {
			return err
		}
		review, err := r.Reviews.LockByID(ctx, reviewID)
		if err != nil {
			return err
		}

		prevOverall := review.Ratings.Overall
		if patch.Ratings != nil {
			review.Ratings = *patch.Ratings
		}
		if patch.Body != nil {
			review.Body = *patch.Body
		}
		if patch.ImageURLs != nil {
			review.ImageURLs = *patch.ImageURLs
		}
		if patch.VerifiedVisit != nil {
			review.VerifiedVisit = *patch.VerifiedVisit
		}
		if err := r.Reviews.UpdateReview(ctx, review); err != nil {
			return err
		}
		updated = review

		if review.Ratings.Overall == prevOverall {
			return nil
		}
		return recomputeAggregate(ctx, r, review.VenueID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// DeleteReview removes a review, re-derives the venue aggregate and
// decrements the author's counter (floored at zero).
func (s *Service) DeleteReview(ctx context.Context, caller *Caller, reviewID int64) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	current, err := s.repos.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return notFound(err)
	}
	if !accesscontrol.CanModify(caller.Role, accesscontrol.ActionDeleteReview, current.UserID == caller.ID) {
		return ErrUnauthorized
	}

	err = s.tx.WithTx(ctx, func(r *storage.Repos) error {
		if _, err := r.Venues.LockByID(ctx, current.VenueID); err != nil {
			return err
		}
		review, err := r.Reviews.LockByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if err := r.Reviews.DeleteReview(ctx, review.ID); err != nil {
			return err
		}
		if err := recomputeAggregate(ctx, r, review.VenueID); err != nil {
			return err
		}
		return r.Users.AdjustReviewCount(ctx, review.UserID, -1)
	})
	if err != nil {
		return notFound(err)
	}
	s.invalidate(ctx)
	return nil
}

// MarkHelpful records or clears the caller's helpful vote on a review.
// Authors cannot vote on their own reviews.
func (s *Service) MarkHelpful(ctx context.Context, caller *Caller, reviewID int64, helpful bool) (*venuereviews.Review, error) {
	if err := authorize(caller, accesscontrol.ActionVoteReview); err != nil {
		return nil, err
	}

	var out *venuereviews.Review
	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		review, err := r.Reviews.LockByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if review.UserID == caller.ID {
			return ErrUnauthorized
		}

		changed, err := r.Reviews.SetHelpfulVote(ctx, reviewID, caller.ID, helpful)
		if err != nil {
			return err
		}
		if changed {
			delta := 1
			if !helpful {
				delta = -1
			}
			if err := r.Reviews.AdjustHelpfulCount(ctx, reviewID, delta); err != nil {
				return err
			}
			review.HelpfulCount = max(review.HelpfulCount+delta, 0)
		}
		out = review
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

// recomputeAggregate derives the venue rating from its full review set. The
// caller must hold the venue row lock.
func recomputeAggregate(ctx context.Context, r *storage.Repos, venueID int64) error {
	reviews, err := r.Reviews.GetReviews(ctx, venueID)
	if err != nil {
		return err
	}
	agg := venuereviews.Compute(reviews)
	if err := r.Venues.SetRating(ctx, venueID, agg.AvgRating, agg.ReviewCount); err != nil {
		return fmt.Errorf("set venue rating: %w", err)
	}
	return nil
}
