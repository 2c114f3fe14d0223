package database

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// AsynqRedisOpt converts REDIS_URL into the connection option asynq expects.
func AsynqRedisOpt(redisURL string) (asynq.RedisConnOpt, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL for asynq: %w", err)
	}
	return opt, nil
}

// NewAsynqClient builds the task producer used by the API server.
func NewAsynqClient(redisURL string) (*asynq.Client, error) {
	opt, err := AsynqRedisOpt(redisURL)
	if err != nil {
		return nil, err
	}
	return asynq.NewClient(opt), nil
}
