package service

import (
	"context"
	"time"

	"real_estate/internal/config"
	"real_estate/internal/repository"
	"real_estate/pkg/logger"
)

type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

type RateLimitService interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

type rateLimitService struct {
	rateLimitRepo repository.RateLimitRepository
	cfg           config.RateLimitConfig
	log           logger.Logger
}

func NewRateLimitService(rateLimitRepo repository.RateLimitRepository, cfg config.RateLimitConfig, log logger.Logger) RateLimitService {
	return &rateLimitService{
		rateLimitRepo: rateLimitRepo,
		cfg:           cfg,
		log:           log,
	}
}

func (s *rateLimitService) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	count, ttl, err := s.rateLimitRepo.Hit(ctx, key, s.cfg.Window)
	if err != nil {
		return nil, err
	}

	remaining := s.cfg.Requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:   int(count) <= s.cfg.Requests,
		Limit:     s.cfg.Requests,
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}
