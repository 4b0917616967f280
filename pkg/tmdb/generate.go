package tmdb

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/tvrenamer/tvrenamer/pkg/tmdb ClientInterface
