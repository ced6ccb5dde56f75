package server

import (
	"net/http"

	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListAds(w http.ResponseWriter, r *http.Request) {
	var filter types.AdFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondErrorStatus(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	ads, err := s.ads.Ads(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ads)
}

func (s *Service) handleGetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := s.ads.Ad(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ad)
}

func (s *Service) handleAdsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := flow.Param(ctx, "id")

	if _, err := s.users.User(ctx, userID); err != nil {
		s.respondError(w, err)
		return
	}

	ads, err := s.ads.AdsByUser(ctx, userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ads)
}

func (s *Service) handlePendingAds(w http.ResponseWriter, r *http.Request) {
	ads, err := s.ads.AdsByStatus(r.Context(), false)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ads)
}

func (s *Service) handleAdsByStatus(w http.ResponseWriter, r *http.Request) {
	var approved bool
	switch flow.Param(r.Context(), "status") {
	case "pending":
		approved = false
	case "approved":
		approved = true
	default:
		s.respondErrorStatus(w, http.StatusBadRequest, "status must be pending or approved")
		return
	}

	ads, err := s.ads.AdsByStatus(r.Context(), approved)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ads)
}

func (s *Service) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ad types.Ad
	if !s.decodeJSON(w, r, &ad) {
		return
	}

	if _, err := s.businesses.Business(ctx, ad.BusinessID); err != nil {
		s.respondError(w, err)
		return
	}
	if _, err := s.categories.Category(ctx, ad.CategoryID); err != nil {
		s.respondError(w, err)
		return
	}

	// New ads always start pending, whatever the client sent.
	ad.Status = false

	if err := s.ads.Create(ctx, &ad); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, ad)
}

func (s *Service) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "id")

	var upd types.UpdateAd
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.ads.Ad(ctx, adID); err != nil {
		s.respondError(w, err)
		return
	}

	if upd.BusinessID != nil {
		if _, err := s.businesses.Business(ctx, *upd.BusinessID); err != nil {
			s.respondError(w, err)
			return
		}
	}
	if upd.CategoryID != nil {
		if _, err := s.categories.Category(ctx, *upd.CategoryID); err != nil {
			s.respondError(w, err)
			return
		}
	}

	if err := s.ads.Update(ctx, adID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	ad, err := s.ads.Ad(ctx, adID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, ad)
}

func (s *Service) handleApproveAd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "id")

	if err := s.ads.Approve(ctx, adID); err != nil {
		s.respondError(w, err)
		return
	}

	ad, err := s.ads.Ad(ctx, adID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, ad)
}

func (s *Service) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := s.cascade.DeleteAd(r.Context(), flow.Param(r.Context(), "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
