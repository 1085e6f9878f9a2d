package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const resultsKey = "results"

// ResultRepository keeps the history of finished matches, newest first.
type ResultRepository interface {
	Append(ctx context.Context, result *entity.MatchResult) error
	List(ctx context.Context, limit int64) ([]entity.MatchResult, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Append(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err = that.client.LPush(ctx, resultsKey, resultJSON).Err(); err != nil {
		return fmt.Errorf("failed to push result: %w", err)
	}

	return nil
}

// List returns at most limit results; a non-positive limit returns all of them.
func (that *dbResult) List(ctx context.Context, limit int64) ([]entity.MatchResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = limit - 1
	}

	response, err := that.client.LRange(ctx, resultsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]entity.MatchResult, 0, len(response))
	for _, item := range response {
		var result entity.MatchResult
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, result)
	}

	return results, nil
}
