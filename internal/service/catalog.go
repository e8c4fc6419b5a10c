package service

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/cache"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
)

const (
	cacheKeyPlans      = "catalog:plans"
	cacheKeyBoostPacks = "catalog:boostpacks"
)

// CatalogService serves the plan and boost pack catalog through a
// read-through cache. The catalog changes rarely and is read on every
// checkout resolution.
type CatalogService interface {
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListBoostPacks(ctx context.Context) ([]*dto.BoostPackResponse, error)
	GetBoostPack(ctx context.Context, id string) (*dto.BoostPackResponse, error)
	InvalidateCache(ctx context.Context)
}

type catalogService struct {
	ServiceParams
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{
		ServiceParams: params,
	}
}

// ListPlans returns all published plans
func (s *catalogService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if cached, ok := s.Cache.Get(ctx, cacheKeyPlans); ok {
		if plans, ok := cached.([]*plan.Plan); ok {
			return toPlanResponses(plans), nil
		}
	}

	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, cacheKeyPlans, plans, cache.DefaultExpiration)
	return toPlanResponses(plans), nil
}

// GetPlan returns a single plan
func (s *catalogService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(p), nil
}

// ListBoostPacks returns all published boost packs
func (s *catalogService) ListBoostPacks(ctx context.Context) ([]*dto.BoostPackResponse, error) {
	if cached, ok := s.Cache.Get(ctx, cacheKeyBoostPacks); ok {
		if packs, ok := cached.([]*boostpack.BoostPack); ok {
			return toBoostPackResponses(packs), nil
		}
	}

	packs, err := s.BoostPackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, cacheKeyBoostPacks, packs, cache.DefaultExpiration)
	return toBoostPackResponses(packs), nil
}

// GetBoostPack returns a single boost pack
func (s *catalogService) GetBoostPack(ctx context.Context, id string) (*dto.BoostPackResponse, error) {
	b, err := s.BoostPackRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewBoostPackResponse(b), nil
}

// InvalidateCache drops all cached catalog data
func (s *catalogService) InvalidateCache(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, "catalog:")
}

func toPlanResponses(plans []*plan.Plan) []*dto.PlanResponse {
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.NewPlanResponse(p))
	}
	return out
}

func toBoostPackResponses(packs []*boostpack.BoostPack) []*dto.BoostPackResponse {
	out := make([]*dto.BoostPackResponse, 0, len(packs))
	for _, b := range packs {
		out = append(out, dto.NewBoostPackResponse(b))
	}
	return out
}
