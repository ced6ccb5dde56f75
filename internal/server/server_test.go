package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paczusie/internal/auth"
	"paczusie/internal/utils"
	"paczusie/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory implementation of every store interface the
// service consumes, shared across the handler tests.
type fakeStore struct {
	users      map[string]*types.User
	businesses map[string]*types.BusinessProfile
	ads        map[string]*types.Ad
	categories map[string]*types.Category
	links      []*types.AdCategory
	reviews    map[string]*types.Review

	nextID int

	adUpdates map[string]types.UpdateAd

	deletedUsers      []string
	deletedBusinesses []string
	deletedAds        []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]*types.User{},
		businesses: map[string]*types.BusinessProfile{},
		ads:        map[string]*types.Ad{},
		categories: map[string]*types.Category{},
		reviews:    map[string]*types.Review{},
		adUpdates:  map[string]types.UpdateAd{},
	}
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// userStore

func (f *fakeStore) User(_ context.Context, userID string) (*types.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (f *fakeStore) Users(_ context.Context) ([]*types.User, error) {
	out := make([]*types.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, user *types.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = f.genID("user")
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) Update(_ context.Context, userID string, upd types.UpdateUser) error {
	user := f.users[userID]
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.HashedPassword != nil {
		user.HashedPassword = *upd.HashedPassword
	}
	return nil
}

// businessStore

type fakeBusinesses struct{ *fakeStore }

func (f fakeBusinesses) Business(_ context.Context, businessID string) (*types.BusinessProfile, error) {
	business, ok := f.businesses[businessID]
	if !ok {
		return nil, types.ErrBusinessNotFound
	}
	return business, nil
}

func (f fakeBusinesses) Businesses(_ context.Context) ([]*types.BusinessProfile, error) {
	out := make([]*types.BusinessProfile, 0, len(f.businesses))
	for _, business := range f.businesses {
		out = append(out, business)
	}
	return out, nil
}

func (f fakeBusinesses) BusinessesByUser(_ context.Context, userID string) ([]*types.BusinessProfile, error) {
	var out []*types.BusinessProfile
	for _, business := range f.businesses {
		if business.UserID == userID {
			out = append(out, business)
		}
	}
	return out, nil
}

func (f fakeBusinesses) Create(_ context.Context, business *types.BusinessProfile) error {
	if business.ID == "" {
		business.ID = f.genID("business")
	}
	business.CreatedAt = time.Now()
	f.businesses[business.ID] = business
	return nil
}

func (f fakeBusinesses) Update(_ context.Context, businessID string, upd types.UpdateBusinessProfile) error {
	business := f.businesses[businessID]
	if upd.Name != nil {
		business.Name = *upd.Name
	}
	if upd.Description != nil {
		business.Description = upd.Description
	}
	if upd.Address != nil {
		business.Address = *upd.Address
	}
	if upd.Phone != nil {
		business.Phone = *upd.Phone
	}
	return nil
}

// adStore

type fakeAds struct{ *fakeStore }

func (f fakeAds) Ad(_ context.Context, adID string) (*types.Ad, error) {
	ad, ok := f.ads[adID]
	if !ok {
		return nil, types.ErrAdNotFound
	}
	return ad, nil
}

func (f fakeAds) Ads(_ context.Context, filter types.AdFilter) ([]*types.Ad, error) {
	var out []*types.Ad
	for _, ad := range f.ads {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			title := strings.ToLower(ad.Title)
			description := strings.ToLower(utils.PtrString(ad.Description))
			if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
				continue
			}
		}
		if filter.CategoryID != "" && !f.linked(ad.ID, filter.CategoryID) {
			continue
		}
		out = append(out, ad)
	}
	return out, nil
}

func (f fakeAds) linked(adID, categoryID string) bool {
	for _, link := range f.links {
		if link.AdID == adID && link.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func (f fakeAds) AdsByBusiness(_ context.Context, businessID string) ([]*types.Ad, error) {
	var out []*types.Ad
	for _, ad := range f.ads {
		if ad.BusinessID == businessID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f fakeAds) AdsByUser(_ context.Context, userID string) ([]*types.Ad, error) {
	var out []*types.Ad
	for _, ad := range f.ads {
		business, ok := f.businesses[ad.BusinessID]
		if ok && business.UserID == userID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f fakeAds) AdsByStatus(_ context.Context, approved bool) ([]*types.Ad, error) {
	var out []*types.Ad
	for _, ad := range f.ads {
		if ad.Status == approved {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (f fakeAds) Create(_ context.Context, ad *types.Ad) error {
	if ad.ID == "" {
		ad.ID = f.genID("ad")
	}
	ad.CreatedAt = time.Now()
	f.ads[ad.ID] = ad
	return nil
}

func (f fakeAds) Update(_ context.Context, adID string, upd types.UpdateAd) error {
	f.adUpdates[adID] = upd
	ad := f.ads[adID]
	if upd.Title != nil {
		ad.Title = *upd.Title
	}
	if upd.BusinessID != nil {
		ad.BusinessID = *upd.BusinessID
	}
	if upd.CategoryID != nil {
		ad.CategoryID = *upd.CategoryID
	}
	if upd.Description != nil {
		ad.Description = upd.Description
	}
	if upd.PostDate != nil {
		ad.PostDate = *upd.PostDate
	}
	if upd.DueDate != nil {
		ad.DueDate = *upd.DueDate
	}
	return nil
}

func (f fakeAds) Approve(_ context.Context, adID string) error {
	ad, ok := f.ads[adID]
	if !ok {
		return types.ErrAdNotFound
	}
	ad.Status = true
	return nil
}

// categoryStore

type fakeCategories struct{ *fakeStore }

func (f fakeCategories) Category(_ context.Context, categoryID string) (*types.Category, error) {
	category, ok := f.categories[categoryID]
	if !ok {
		return nil, types.ErrCategoryNotFound
	}
	return category, nil
}

func (f fakeCategories) Categories(_ context.Context) ([]*types.Category, error) {
	out := make([]*types.Category, 0, len(f.categories))
	for _, category := range f.categories {
		out = append(out, category)
	}
	return out, nil
}

func (f fakeCategories) Create(_ context.Context, category *types.Category) error {
	if category.ID == "" {
		category.ID = f.genID("category")
	}
	category.CreatedAt = time.Now()
	f.categories[category.ID] = category
	return nil
}

func (f fakeCategories) Update(_ context.Context, categoryID string, upd types.UpdateCategory) error {
	if upd.Name != nil {
		f.categories[categoryID].Name = *upd.Name
	}
	return nil
}

func (f fakeCategories) Delete(_ context.Context, categoryID string) error {
	if _, ok := f.categories[categoryID]; !ok {
		return types.ErrCategoryNotFound
	}
	delete(f.categories, categoryID)
	return nil
}

// adCategoryStore

type fakeLinks struct{ *fakeStore }

func (f fakeLinks) Link(_ context.Context, adID, categoryID string) (*types.AdCategory, error) {
	for _, link := range f.fakeStore.links {
		if link.AdID == adID && link.CategoryID == categoryID {
			return link, nil
		}
	}
	return nil, types.ErrAdCategoryNotFound
}

func (f fakeLinks) Links(_ context.Context) ([]*types.AdCategory, error) {
	return f.links, nil
}

func (f fakeLinks) LinksByAd(_ context.Context, adID string) ([]*types.AdCategory, error) {
	var out []*types.AdCategory
	for _, link := range f.links {
		if link.AdID == adID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f fakeLinks) Create(_ context.Context, link *types.AdCategory) error {
	for _, existing := range f.fakeStore.links {
		if existing.AdID == link.AdID && existing.CategoryID == link.CategoryID {
			return types.ErrAdCategoryExists
		}
	}
	link.CreatedAt = time.Now()
	f.fakeStore.links = append(f.fakeStore.links, link)
	return nil
}

func (f fakeLinks) Update(_ context.Context, adID, categoryID string, upd types.UpdateAdCategory) error {
	var target *types.AdCategory
	for _, link := range f.fakeStore.links {
		if link.AdID == adID && link.CategoryID == categoryID {
			target = link
			break
		}
	}
	if target == nil {
		return types.ErrAdCategoryNotFound
	}

	newAdID, newCategoryID := adID, categoryID
	if upd.AdID != nil {
		newAdID = *upd.AdID
	}
	if upd.CategoryID != nil {
		newCategoryID = *upd.CategoryID
	}

	for _, link := range f.fakeStore.links {
		if link != target && link.AdID == newAdID && link.CategoryID == newCategoryID {
			return types.ErrAdCategoryExists
		}
	}

	target.AdID = newAdID
	target.CategoryID = newCategoryID
	return nil
}

func (f fakeLinks) Delete(_ context.Context, adID, categoryID string) error {
	for i, link := range f.fakeStore.links {
		if link.AdID == adID && link.CategoryID == categoryID {
			f.fakeStore.links = append(f.fakeStore.links[:i], f.fakeStore.links[i+1:]...)
			return nil
		}
	}
	return types.ErrAdCategoryNotFound
}

// reviewStore

type fakeReviews struct{ *fakeStore }

func (f fakeReviews) Review(_ context.Context, reviewID string) (*types.Review, error) {
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, types.ErrReviewNotFound
	}
	return review, nil
}

func (f fakeReviews) Reviews(_ context.Context) ([]*types.Review, error) {
	out := make([]*types.Review, 0, len(f.reviews))
	for _, review := range f.reviews {
		out = append(out, review)
	}
	return out, nil
}

func (f fakeReviews) ReviewsByAd(_ context.Context, adID string) ([]*types.Review, error) {
	var out []*types.Review
	for _, review := range f.reviews {
		if review.AdID == adID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f fakeReviews) Create(_ context.Context, review *types.Review) error {
	if review.ID == "" {
		review.ID = f.genID("review")
	}
	review.CreatedAt = time.Now()
	f.reviews[review.ID] = review
	return nil
}

func (f fakeReviews) Update(_ context.Context, reviewID string, upd types.UpdateReview) error {
	review := f.reviews[reviewID]
	if upd.Rating != nil {
		review.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		review.Comment = upd.Comment
	}
	return nil
}

func (f fakeReviews) Delete(_ context.Context, reviewID string) error {
	if _, ok := f.reviews[reviewID]; !ok {
		return types.ErrReviewNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

// cascadeEngine

type fakeCascade struct{ *fakeStore }

func (f fakeCascade) DeleteUser(_ context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return types.ErrUserNotFound
	}
	for businessID, business := range f.businesses {
		if business.UserID != userID {
			continue
		}
		f.deleteBusinessRows(businessID)
	}
	delete(f.users, userID)
	f.fakeStore.deletedUsers = append(f.fakeStore.deletedUsers, userID)
	return nil
}

func (f fakeCascade) DeleteBusiness(_ context.Context, businessID string) error {
	if _, ok := f.businesses[businessID]; !ok {
		return types.ErrBusinessNotFound
	}
	f.deleteBusinessRows(businessID)
	f.fakeStore.deletedBusinesses = append(f.fakeStore.deletedBusinesses, businessID)
	return nil
}

func (f fakeCascade) DeleteAd(_ context.Context, adID string) error {
	if _, ok := f.ads[adID]; !ok {
		return types.ErrAdNotFound
	}
	f.deleteAdRows(adID)
	f.fakeStore.deletedAds = append(f.fakeStore.deletedAds, adID)
	return nil
}

func (f fakeCascade) deleteBusinessRows(businessID string) {
	for adID, ad := range f.ads {
		if ad.BusinessID == businessID {
			f.deleteAdRows(adID)
		}
	}
	delete(f.businesses, businessID)
}

func (f fakeCascade) deleteAdRows(adID string) {
	kept := f.fakeStore.links[:0]
	for _, link := range f.fakeStore.links {
		if link.AdID != adID {
			kept = append(kept, link)
		}
	}
	f.fakeStore.links = kept
	for reviewID, review := range f.reviews {
		if review.AdID == adID {
			delete(f.reviews, reviewID)
		}
	}
	delete(f.ads, adID)
}

func newTestService(t *testing.T, fs *fakeStore) *Service {
	t.Helper()

	config := &types.Config{
		Environment:        "development",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		ReadTimeoutSec:     10,
		WriteTimeoutSec:    15,
		TokenTTLMin:        60,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := auth.NewTokens("test-secret", time.Hour)

	s, err := New(
		config,
		logger,
		fs,
		fakeBusinesses{fs},
		fakeAds{fs},
		fakeCategories{fs},
		fakeLinks{fs},
		fakeReviews{fs},
		fakeCascade{fs},
		tokens,
	)
	require.NoError(t, err)

	return s
}

func (s *Service) testRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (s *Service) testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

func TestNewRejectsMalformedCookieKeys(t *testing.T) {
	fs := newFakeStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	tokens := auth.NewTokens("test-secret", time.Hour)

	newService := func(config *types.Config) error {
		_, err := New(
			config,
			logger,
			fs,
			fakeBusinesses{fs},
			fakeAds{fs},
			fakeCategories{fs},
			fakeLinks{fs},
			fakeReviews{fs},
			fakeCascade{fs},
			tokens,
		)
		return err
	}

	err := newService(&types.Config{CookieHashKey: "%%% not base64 %%%"})
	require.ErrorContains(t, err, "cookie hash key")

	err = newService(&types.Config{CookieBlockKey: "%%% not base64 %%%"})
	require.ErrorContains(t, err, "cookie block key")
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
