package types

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBusinessNotFound   = errors.New("business profile not found")
	ErrAdNotFound         = errors.New("ad not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrAdCategoryNotFound = errors.New("ad category link not found")
	ErrReviewNotFound     = errors.New("review not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrAdCategoryExists   = errors.New("ad category link already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
