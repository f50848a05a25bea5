// Package usecase implements the cache-or-fetch policy for company profiles.
package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksync/internal/feature/company/domain/entity"
)

// CompanyTTL is the maximum age of a cached company profile. Profiles
// change rarely, so the window is generous.
const CompanyTTL = 7 * 24 * time.Hour

// CompanyRepository abstracts the local store for company profiles.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type CompanyRepository interface {
	GetFresh(ctx context.Context, symbol string, cutoff time.Time) (*entity.CompanyInfo, error)
	Upsert(ctx context.Context, info entity.CompanyInfo) error
}

// CompanySource abstracts the remote data provider for company profiles.
type CompanySource interface {
	Company(ctx context.Context, symbol string) (entity.CompanyInfo, error)
}

// CompanyUsecase serves company profiles from the local store,
// refetching once the cached row exceeds CompanyTTL.
type CompanyUsecase struct {
	repo   CompanyRepository
	source CompanySource
	group  singleflight.Group
	now    func() time.Time
}

// NewCompanyUsecase creates a CompanyUsecase.
func NewCompanyUsecase(repo CompanyRepository, source CompanySource) *CompanyUsecase {
	return &CompanyUsecase{repo: repo, source: source, now: time.Now}
}

// GetCompanyInfo returns the profile for symbol, fetching and
// persisting it when absent or stale. Concurrent callers for the same
// symbol share one remote call.
func (u *CompanyUsecase) GetCompanyInfo(ctx context.Context, symbol string) (entity.CompanyInfo, error) {
	cached, err := u.repo.GetFresh(ctx, symbol, u.now().Add(-CompanyTTL))
	if err != nil {
		return entity.CompanyInfo{}, err
	}
	if cached != nil {
		return *cached, nil
	}

	v, err, _ := u.group.Do("company:"+symbol, func() (any, error) {
		info, err := u.source.Company(ctx, symbol)
		if err != nil {
			return entity.CompanyInfo{}, err
		}
		info.FetchTimestamp = u.now()
		if err := u.repo.Upsert(ctx, info); err != nil {
			return entity.CompanyInfo{}, err
		}
		return info, nil
	})
	if err != nil {
		return entity.CompanyInfo{}, err
	}
	return v.(entity.CompanyInfo), nil
}
