package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"paczusie/internal/auth"
	"paczusie/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type userStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Users(ctx context.Context) ([]*types.User, error)
	Create(ctx context.Context, user *types.User) error
	Update(ctx context.Context, userID string, upd types.UpdateUser) error
}

type businessStore interface {
	Business(ctx context.Context, businessID string) (*types.BusinessProfile, error)
	Businesses(ctx context.Context) ([]*types.BusinessProfile, error)
	BusinessesByUser(ctx context.Context, userID string) ([]*types.BusinessProfile, error)
	Create(ctx context.Context, business *types.BusinessProfile) error
	Update(ctx context.Context, businessID string, upd types.UpdateBusinessProfile) error
}

type adStore interface {
	Ad(ctx context.Context, adID string) (*types.Ad, error)
	Ads(ctx context.Context, filter types.AdFilter) ([]*types.Ad, error)
	AdsByBusiness(ctx context.Context, businessID string) ([]*types.Ad, error)
	AdsByUser(ctx context.Context, userID string) ([]*types.Ad, error)
	AdsByStatus(ctx context.Context, approved bool) ([]*types.Ad, error)
	Create(ctx context.Context, ad *types.Ad) error
	Update(ctx context.Context, adID string, upd types.UpdateAd) error
	Approve(ctx context.Context, adID string) error
}

type categoryStore interface {
	Category(ctx context.Context, categoryID string) (*types.Category, error)
	Categories(ctx context.Context) ([]*types.Category, error)
	Create(ctx context.Context, category *types.Category) error
	Update(ctx context.Context, categoryID string, upd types.UpdateCategory) error
	Delete(ctx context.Context, categoryID string) error
}

type adCategoryStore interface {
	Link(ctx context.Context, adID, categoryID string) (*types.AdCategory, error)
	Links(ctx context.Context) ([]*types.AdCategory, error)
	LinksByAd(ctx context.Context, adID string) ([]*types.AdCategory, error)
	Create(ctx context.Context, link *types.AdCategory) error
	Update(ctx context.Context, adID, categoryID string, upd types.UpdateAdCategory) error
	Delete(ctx context.Context, adID, categoryID string) error
}

type reviewStore interface {
	Review(ctx context.Context, reviewID string) (*types.Review, error)
	Reviews(ctx context.Context) ([]*types.Review, error)
	ReviewsByAd(ctx context.Context, adID string) ([]*types.Review, error)
	Create(ctx context.Context, review *types.Review) error
	Update(ctx context.Context, reviewID string, upd types.UpdateReview) error
	Delete(ctx context.Context, reviewID string) error
}

type cascadeEngine interface {
	DeleteUser(ctx context.Context, userID string) error
	DeleteBusiness(ctx context.Context, businessID string) error
	DeleteAd(ctx context.Context, adID string) error
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	users        userStore
	businesses   businessStore
	ads          adStore
	categories   categoryStore
	adCategories adCategoryStore
	reviews      reviewStore
	cascade      cascadeEngine

	tokens *auth.Tokens
	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	users userStore,
	businesses businessStore,
	ads adStore,
	categories categoryStore,
	adCategories adCategoryStore,
	reviews reviewStore,
	cascade cascadeEngine,
	tokens *auth.Tokens,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s := &Service{
		logger: logger,
		config: config,

		users:        users,
		businesses:   businesses,
		ads:          ads,
		categories:   categories,
		adCategories: adCategories,
		reviews:      reviews,
		cascade:      cascade,

		tokens: tokens,
		cookie: securecookie.New(hashKey, blockKey),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           corsHandler.Handler(mux),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/login", s.handleLogin, http.MethodPost)

	// Reads are open. Fixed segments must be registered before the :id
	// routes they would otherwise shadow.
	r.HandleFunc("/users", s.handleListUsers, http.MethodGet)
	r.HandleFunc("/users/:id", s.handleGetUser, http.MethodGet)

	r.HandleFunc("/businesses", s.handleListBusinesses, http.MethodGet)
	r.HandleFunc("/businesses/user/:id", s.handleBusinessesByUser, http.MethodGet)
	r.HandleFunc("/businesses/:id", s.handleGetBusiness, http.MethodGet)
	r.HandleFunc("/businesses/:id/ads", s.handleAdsByBusiness, http.MethodGet)

	r.HandleFunc("/ads", s.handleListAds, http.MethodGet)
	r.HandleFunc("/ads/pending", s.handlePendingAds, http.MethodGet)
	r.HandleFunc("/ads/status/:status", s.handleAdsByStatus, http.MethodGet)
	r.HandleFunc("/ads/user/:id", s.handleAdsByUser, http.MethodGet)
	r.HandleFunc("/ads/:id", s.handleGetAd, http.MethodGet)

	r.HandleFunc("/categories", s.handleListCategories, http.MethodGet)
	r.HandleFunc("/categories/:id", s.handleGetCategory, http.MethodGet)

	r.HandleFunc("/ad_categories", s.handleListAdCategories, http.MethodGet)
	r.HandleFunc("/ad_categories/:ad_id", s.handleAdCategoriesByAd, http.MethodGet)

	r.HandleFunc("/reviews", s.handleListReviews, http.MethodGet)
	r.HandleFunc("/reviews/ad/:id", s.handleReviewsByAd, http.MethodGet)
	r.HandleFunc("/reviews/ad/:id/average", s.handleReviewAverage, http.MethodGet)
	r.HandleFunc("/reviews/:id", s.handleGetReview, http.MethodGet)

	// Mutations require a valid token. The original design left these
	// open; drop the RequireAuth line below to restore that behavior.
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/me", s.handleMe, http.MethodGet)

		r.HandleFunc("/users", s.handleCreateUser, http.MethodPost)
		r.HandleFunc("/users/:id", s.handleUpdateUser, http.MethodPut)
		r.HandleFunc("/users/:id", s.handleDeleteUser, http.MethodDelete)

		r.HandleFunc("/businesses", s.handleCreateBusiness, http.MethodPost)
		r.HandleFunc("/businesses/:id", s.handleUpdateBusiness, http.MethodPut)
		r.HandleFunc("/businesses/:id", s.handleDeleteBusiness, http.MethodDelete)

		r.HandleFunc("/ads", s.handleCreateAd, http.MethodPost)
		r.HandleFunc("/ads/:id", s.handleUpdateAd, http.MethodPut)
		r.HandleFunc("/ads/:id", s.handleDeleteAd, http.MethodDelete)
		r.HandleFunc("/ads/:id/approve", s.handleApproveAd, http.MethodPatch)

		r.HandleFunc("/categories", s.handleCreateCategory, http.MethodPost)
		r.HandleFunc("/categories/:id", s.handleUpdateCategory, http.MethodPut)
		r.HandleFunc("/categories/:id", s.handleDeleteCategory, http.MethodDelete)

		r.HandleFunc("/ad_categories", s.handleCreateAdCategory, http.MethodPost)
		r.HandleFunc("/ad_categories/:ad_id/:category_id", s.handleUpdateAdCategory, http.MethodPut)
		r.HandleFunc("/ad_categories/:ad_id/:category_id", s.handleDeleteAdCategory, http.MethodDelete)

		r.HandleFunc("/reviews", s.handleCreateReview, http.MethodPost)
		r.HandleFunc("/reviews/:id", s.handleUpdateReview, http.MethodPut)
		r.HandleFunc("/reviews/:id", s.handleDeleteReview, http.MethodDelete)
	})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
