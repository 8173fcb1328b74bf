package analytics

import (
	"context"
	"encoding/json"
	"time"

	domainAnalytics "vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/uow"
	"vms-backend/internal/usecase/ingest"
)

// dummyPatterns match the seed volunteers created while testing the dashboards.
var dummyPatterns = []string{"%@example.%", "%dummy%", "test.volunteer%"}

type Usecase struct {
	uow    uow.UnitOfWork
	ingest *ingest.Usecase
	cache  Cache
	ttl    time.Duration
	log    Logger
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, jobs *ingest.Usecase, cache Cache, ttl time.Duration, log Logger) *Usecase {
	if log == nil {
		log = nopLogger{}
	}
	return &Usecase{uow: tx, ingest: jobs, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (u *Usecase) loc() *time.Location { return u.ingest.Location() }

func (u *Usecase) RebuildSatisfaction(ctx context.Context) (*ingest.Result, error) {
	res, err := u.ingest.RebuildSatisfaction(ctx)
	if err != nil {
		return nil, err
	}
	u.Invalidate(ctx)
	return res, nil
}

func (u *Usecase) RebuildParticipation(ctx context.Context) (*ingest.Result, error) {
	res, err := u.ingest.RebuildParticipation(ctx)
	if err != nil {
		return nil, err
	}
	u.Invalidate(ctx)
	return res, nil
}

// ClearDerived empties every derived table; reads fall back to live data
// until the next rebuild.
func (u *Usecase) ClearDerived(ctx context.Context) error {
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Analytics.Truncate(ctx)
	}); err != nil {
		return err
	}
	u.Invalidate(ctx)
	return nil
}

func (u *Usecase) DeleteDummyVolunteers(ctx context.Context) (*MaintenanceResult, error) {
	var n int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		n, err = r.Analytics.DeleteHistoryByEmailPatterns(ctx, dummyPatterns)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.Invalidate(ctx)
	return &MaintenanceResult{Deleted: n}, nil
}

// Invalidate drops every cached analytics result. Writers of source data
// call it through their OnChange hook.
func (u *Usecase) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Flush(ctx); err != nil {
		u.log.Warnf("analytics cache flush: %v", err)
	}
}

// cached serves key from the cache or computes and stores it. Cache failures
// only cost a recomputation.
func cached[T any](ctx context.Context, u *Usecase, key string, fn func() (T, error)) (T, error) {
	if u.cache != nil {
		b, ok, err := u.cache.Get(ctx, key)
		if err != nil {
			u.log.Warnf("analytics cache get %s: %v", key, err)
		} else if ok {
			var v T
			if err := json.Unmarshal(b, &v); err == nil {
				return v, nil
			}
		}
	}
	v, err := fn()
	if err != nil || u.cache == nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		if err := u.cache.Set(ctx, key, b, u.ttl); err != nil {
			u.log.Warnf("analytics cache set %s: %v", key, err)
		}
	}
	return v, nil
}

// history returns the stored participation rows, or rows derived on the fly
// when the table has never been built.
func (u *Usecase) history(ctx context.Context, f domainAnalytics.HistoryFilter) ([]domainAnalytics.ParticipationHistory, bool, error) {
	r := u.uow.Repos()
	rows, err := r.Analytics.ListHistory(ctx, domainAnalytics.HistoryFilter{})
	if err != nil {
		return nil, false, err
	}
	derived := false
	if len(rows) == 0 {
		src, err := ingest.LoadSources(ctx, r)
		if err != nil {
			return nil, false, err
		}
		rows = ingest.DeriveParticipation(src, u.loc())
		derived = true
	}
	if f.Semester == "" && f.Email == "" {
		return rows, derived, nil
	}
	out := rows[:0:0]
	for _, h := range rows {
		if f.Semester != "" && h.Semester != f.Semester {
			continue
		}
		if f.Email != "" && h.VolunteerEmail != f.Email {
			continue
		}
		out = append(out, h)
	}
	return out, derived, nil
}

func (u *Usecase) ParticipationHistory(ctx context.Context, f domainAnalytics.HistoryFilter) ([]domainAnalytics.ParticipationHistory, error) {
	if f.Semester != "" {
		if _, err := domainAnalytics.ParseSemester(f.Semester); err != nil {
			return nil, invalidSemester()
		}
	}
	key := "participation:history:" + f.Semester + ":" + f.Email
	return cached(ctx, u, key, func() ([]domainAnalytics.ParticipationHistory, error) {
		rows, _, err := u.history(ctx, f)
		return rows, err
	})
}

// All computes every dashboard analytic in one pass.
func (u *Usecase) All(ctx context.Context) (*Overview, error) {
	return cached(ctx, u, "all", func() (*Overview, error) {
		var (
			out Overview
			err error
		)
		if out.EventSuccess, err = u.EventSuccess(ctx, ""); err != nil {
			return nil, err
		}
		if out.Dropout, err = u.DropoutRisk(ctx); err != nil {
			return nil, err
		}
		if out.Satisfaction, err = u.SatisfactionBySemester(ctx); err != nil {
			return nil, err
		}
		if out.Insights, err = u.Insights(ctx); err != nil {
			return nil, err
		}
		if out.ParticipationSummary, err = u.ParticipationSummary(ctx); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return domainAnalytics.Round2(sum / float64(n))
}
