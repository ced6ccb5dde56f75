package server

import (
	"net/http"

	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.Categories(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, categories)
}

func (s *Service) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.categories.Category(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, category)
}

func (s *Service) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category types.Category
	if !s.decodeJSON(w, r, &category) {
		return
	}

	if category.Name == "" {
		s.respondErrorStatus(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.categories.Create(r.Context(), &category); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, category)
}

func (s *Service) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := flow.Param(ctx, "id")

	var upd types.UpdateCategory
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.categories.Category(ctx, categoryID); err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.categories.Update(ctx, categoryID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	category, err := s.categories.Category(ctx, categoryID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, category)
}

// Category deletion does not cascade: ad_category rows referencing the
// category stay behind as orphans.
func (s *Service) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), flow.Param(r.Context(), "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
