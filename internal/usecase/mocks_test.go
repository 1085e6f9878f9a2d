package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockMatchRepo struct {
	mock.Mock
}

func (that *mockMatchRepo) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	args := that.Called(ctx, match)

	return args.Error(0)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Append(ctx context.Context, result *entity.MatchResult) error {
	args := that.Called(ctx, result)

	return args.Error(0)
}

func (that *mockResultRepo) List(ctx context.Context, limit int64) ([]entity.MatchResult, error) {
	args := that.Called(ctx, limit)

	results, _ := args.Get(0).([]entity.MatchResult)

	return results, args.Error(1)
}
