package server

import (
	"net/http"

	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.businesses.Businesses(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, businesses)
}

func (s *Service) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	business, err := s.businesses.Business(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, business)
}

func (s *Service) handleBusinessesByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := flow.Param(ctx, "id")

	if _, err := s.users.User(ctx, userID); err != nil {
		s.respondError(w, err)
		return
	}

	businesses, err := s.businesses.BusinessesByUser(ctx, userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, businesses)
}

func (s *Service) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var business types.BusinessProfile
	if !s.decodeJSON(w, r, &business) {
		return
	}

	// The owner must exist; the schema has no declared foreign keys.
	if _, err := s.users.User(ctx, business.UserID); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.businesses.Create(ctx, &business); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, business)
}

func (s *Service) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := flow.Param(ctx, "id")

	var upd types.UpdateBusinessProfile
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.businesses.Business(ctx, businessID); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.businesses.Update(ctx, businessID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	business, err := s.businesses.Business(ctx, businessID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, business)
}

func (s *Service) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := s.cascade.DeleteBusiness(r.Context(), flow.Param(r.Context(), "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Service) handleAdsByBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := flow.Param(ctx, "id")

	if _, err := s.businesses.Business(ctx, businessID); err != nil {
		s.respondError(w, err)
		return
	}

	ads, err := s.ads.AdsByBusiness(ctx, businessID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ads)
}
