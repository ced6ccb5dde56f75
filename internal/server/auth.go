package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"paczusie/internal"
	"paczusie/internal/auth"
	"paczusie/pkg/types"
)

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		s.respondErrorStatus(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Password == "" {
		s.respondErrorStatus(w, http.StatusBadRequest, "first_name, last_name and password are required")
		return
	}

	_, err := s.users.UserByEmail(ctx, req.Email)
	if err == nil {
		s.respondError(w, types.ErrEmailTaken)
		return
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		s.respondError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	user := &types.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hash,
		Role:           types.UserRoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusCreated, user)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.UserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondError(w, types.ErrInvalidCredentials)
			return
		}
		s.respondError(w, err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		s.respondError(w, types.ErrInvalidCredentials)
		return
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	// Browser clients get the token in an encrypted httpOnly cookie as
	// well; API clients use the bearer header.
	if encoded, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, accessToken); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
			Value:    encoded,
			Path:     "/",
			MaxAge:   int(time.Duration(s.config.TokenTTLMin) * time.Minute / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   s.config.Environment != "development",
		})
	} else {
		s.logger.WithError(err).Warn("failed to encode access token cookie")
	}

	s.respond(w, http.StatusOK, types.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.respondErrorStatus(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := s.users.User(ctx, userID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, user)
}
