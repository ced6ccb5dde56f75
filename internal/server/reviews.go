package server

import (
	"net/http"

	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.Reviews(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, reviews)
}

func (s *Service) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.reviews.Review(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, review)
}

func (s *Service) handleReviewsByAd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "id")

	if _, err := s.ads.Ad(ctx, adID); err != nil {
		s.respondError(w, err)
		return
	}

	reviews, err := s.reviews.ReviewsByAd(ctx, adID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, reviews)
}

func (s *Service) handleReviewAverage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "id")

	if _, err := s.ads.Ad(ctx, adID); err != nil {
		s.respondError(w, err)
		return
	}

	reviews, err := s.reviews.ReviewsByAd(ctx, adID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, reviewSummary(reviews))
}

// reviewSummary averages ratings with floating-point division. Zero
// reviews yields {0, 0} rather than dividing by zero.
func reviewSummary(reviews []*types.Review) types.ReviewSummary {
	if len(reviews) == 0 {
		return types.ReviewSummary{}
	}

	var sum int
	for _, review := range reviews {
		sum += review.Rating
	}

	return types.ReviewSummary{
		Average: float64(sum) / float64(len(reviews)),
		Count:   len(reviews),
	}
}

func (s *Service) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var review types.Review
	if !s.decodeJSON(w, r, &review) {
		return
	}

	if _, err := s.ads.Ad(ctx, review.AdID); err != nil {
		s.respondError(w, err)
		return
	}

	// Default the author to the authenticated user when the payload
	// leaves it out.
	if review.UserID == "" {
		if userID, err := s.userIDFromContext(ctx); err == nil {
			review.UserID = userID
		}
	}

	if err := s.reviews.Create(ctx, &review); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, review)
}

func (s *Service) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := flow.Param(ctx, "id")

	var upd types.UpdateReview
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.reviews.Review(ctx, reviewID); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.reviews.Update(ctx, reviewID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	review, err := s.reviews.Review(ctx, reviewID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, review)
}

func (s *Service) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.reviews.Delete(r.Context(), flow.Param(r.Context(), "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
