package usecase

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)
