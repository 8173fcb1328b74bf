package ingest

import (
	"bytes"
	"context"
	"time"

	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/uow"
)

// Usecase rebuilds the derived analytics tables from the operational ones.
type Usecase struct {
	uow uow.UnitOfWork
	loc *time.Location
	log Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, loc *time.Location, log Logger) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Usecase{uow: tx, loc: loc, log: log, now: time.Now}
}

func (u *Usecase) Location() *time.Location { return u.loc }

// RebuildSatisfaction upserts one survey per finalized evaluation and refreshes
// the per-semester rollup. Rows whose values did not change are not written.
func (u *Usecase) RebuildSatisfaction(ctx context.Context) (*Result, error) {
	res := &Result{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		src, err := LoadSources(ctx, r)
		if err != nil {
			return err
		}
		existing, err := r.Analytics.ListSurveys(ctx, 0)
		if err != nil {
			return err
		}
		byKey := make(map[string]*analytics.SatisfactionSurvey, len(existing))
		for i := range existing {
			byKey[surveyKey(&existing[i])] = &existing[i]
		}

		derived := DeriveSurveys(src)
		for i := range derived {
			d := &derived[i]
			k := surveyKey(d)
			old, ok := byKey[k]
			delete(byKey, k)
			switch {
			case !ok:
				if err := r.Analytics.CreateSurvey(ctx, d); err != nil {
					return err
				}
				res.Created++
			case old.SameContent(d):
				res.Unchanged++
			default:
				d.ID, d.CreatedAt = old.ID, old.CreatedAt
				if err := r.Analytics.SaveSurvey(ctx, d); err != nil {
					return err
				}
				res.Updated++
			}
		}
		stale := make([]uint64, 0, len(byKey))
		for _, s := range byKey {
			stale = append(stale, s.ID)
		}
		if err := r.Analytics.DeleteSurveys(ctx, stale); err != nil {
			return err
		}
		res.Deleted = len(stale)

		rollup := DeriveSemesterSatisfaction(derived, u.loc)
		res.Semesters = len(rollup)
		current, err := r.Analytics.ListSemesterSatisfaction(ctx)
		if err != nil {
			return err
		}
		if sameRollup(current, rollup) {
			return nil
		}
		return r.Analytics.ReplaceSemesterSatisfaction(ctx, rollup)
	})
	if err != nil {
		return nil, err
	}
	u.log.Infof("satisfaction rebuild: created=%d updated=%d unchanged=%d deleted=%d semesters=%d",
		res.Created, res.Updated, res.Unchanged, res.Deleted, res.Semesters)
	return res, nil
}

// RebuildParticipation upserts one history row per (volunteer, semester).
func (u *Usecase) RebuildParticipation(ctx context.Context) (*Result, error) {
	res := &Result{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		src, err := LoadSources(ctx, r)
		if err != nil {
			return err
		}
		existing, err := r.Analytics.ListHistory(ctx, analytics.HistoryFilter{})
		if err != nil {
			return err
		}
		byKey := make(map[string]*analytics.ParticipationHistory, len(existing))
		for i := range existing {
			byKey[historyKey(&existing[i])] = &existing[i]
		}

		now := u.now().UTC()
		derived := DeriveParticipation(src, u.loc)
		for i := range derived {
			d := &derived[i]
			k := historyKey(d)
			old, ok := byKey[k]
			delete(byKey, k)
			switch {
			case !ok:
				d.CalculatedAt = now
				if err := r.Analytics.CreateHistory(ctx, d); err != nil {
					return err
				}
				res.Created++
			case old.SameContent(d):
				res.Unchanged++
			default:
				d.ID, d.CalculatedAt = old.ID, now
				if err := r.Analytics.SaveHistory(ctx, d); err != nil {
					return err
				}
				res.Updated++
			}
		}
		stale := make([]uint64, 0, len(byKey))
		for _, h := range byKey {
			stale = append(stale, h.ID)
		}
		if err := r.Analytics.DeleteHistory(ctx, stale); err != nil {
			return err
		}
		res.Deleted = len(stale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Infof("participation rebuild: created=%d updated=%d unchanged=%d deleted=%d",
		res.Created, res.Updated, res.Unchanged, res.Deleted)
	return res, nil
}

func surveyKey(s *analytics.SatisfactionSurvey) string {
	return s.RequirementID + "|" + s.RespondentEmail
}

func historyKey(h *analytics.ParticipationHistory) string {
	return h.VolunteerEmail + "|" + h.Semester
}

func sameRollup(a, b []analytics.SemesterSatisfaction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := &a[i], &b[i]
		if x.Year != y.Year || x.Semester != y.Semester || x.Overall != y.Overall ||
			x.Volunteers != y.Volunteers || x.Beneficiaries != y.Beneficiaries ||
			x.TotalEvaluations != y.TotalEvaluations ||
			!bytes.Equal(x.EventIDs, y.EventIDs) || !bytes.Equal(x.TopIssues, y.TopIssues) {
			return false
		}
	}
	return true
}
