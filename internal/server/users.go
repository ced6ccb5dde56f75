package server

import (
	"net/http"

	"paczusie/internal/auth"
	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.Users(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, users)
}

func (s *Service) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.User(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Service) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.CreateUser
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		s.respondErrorStatus(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	role := req.Role
	if role == "" {
		role = types.UserRoleUser
	}

	user := &types.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hash,
		Role:           role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, user)
}

func (s *Service) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := flow.Param(ctx, "id")

	var upd types.UpdateUser
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	if _, err := s.users.User(ctx, userID); err != nil {
		s.respondError(w, err)
		return
	}

	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			s.respondError(w, err)
			return
		}
		upd.HashedPassword = &hash
	}

	if err := s.users.Update(ctx, userID, upd); err != nil {
		s.respondError(w, err)
		return
	}

	user, err := s.users.User(ctx, userID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, user)
}

func (s *Service) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.cascade.DeleteUser(r.Context(), flow.Param(r.Context(), "id")); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
