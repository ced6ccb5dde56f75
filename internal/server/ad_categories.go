package server

import (
	"net/http"

	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListAdCategories(w http.ResponseWriter, r *http.Request) {
	links, err := s.adCategories.Links(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, links)
}

func (s *Service) handleAdCategoriesByAd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "ad_id")

	if _, err := s.ads.Ad(ctx, adID); err != nil {
		s.respondError(w, err)
		return
	}

	links, err := s.adCategories.LinksByAd(ctx, adID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, links)
}

func (s *Service) handleCreateAdCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var link types.AdCategory
	if !s.decodeJSON(w, r, &link) {
		return
	}

	// Both ends of the link must exist.
	if _, err := s.ads.Ad(ctx, link.AdID); err != nil {
		s.respondError(w, err)
		return
	}
	if _, err := s.categories.Category(ctx, link.CategoryID); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.adCategories.Create(ctx, &link); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, link)
}

// handleUpdateAdCategory re-points a link identified by its current
// (ad_id, category_id) pair.
func (s *Service) handleUpdateAdCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID := flow.Param(ctx, "ad_id")
	categoryID := flow.Param(ctx, "category_id")

	var upd types.UpdateAdCategory
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.adCategories.Link(ctx, adID, categoryID); err != nil {
		s.respondError(w, err)
		return
	}

	if upd.AdID != nil {
		if _, err := s.ads.Ad(ctx, *upd.AdID); err != nil {
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

	if err := s.adCategories.Update(ctx, adID, categoryID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	newAdID, newCategoryID := adID, categoryID
	if upd.AdID != nil {
		newAdID = *upd.AdID
	}
	if upd.CategoryID != nil {
		newCategoryID = *upd.CategoryID
	}

	link, err := s.adCategories.Link(ctx, newAdID, newCategoryID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, link)
}

func (s *Service) handleDeleteAdCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := s.adCategories.Delete(ctx, flow.Param(ctx, "ad_id"), flow.Param(ctx, "category_id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
