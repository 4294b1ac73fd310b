package services

import (
	"context"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/internal/store"
)

// TargetingService serves the fixed province-level analytics reports.
type TargetingService struct {
	store *store.Store
}

// NewTargetingService creates a new TargetingService
func NewTargetingService(st *store.Store) *TargetingService {
	return &TargetingService{store: st}
}

// Coverage returns 4Ps coverage metrics by province.
func (s *TargetingService) Coverage(ctx context.Context) ([]models.CoverageMetrics, error) {
	return s.store.CoverageByProvince(ctx)
}

// Efficiency returns targeting efficiency metrics by province.
func (s *TargetingService) Efficiency(ctx context.Context) ([]models.EfficiencyMetrics, error) {
	return s.store.EfficiencyByProvince(ctx)
}
