package evaluation

import (
	"bytes"
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/decision"
	domainEvaluation "vms-backend/internal/domain/evaluation"
	domainEvent "vms-backend/internal/domain/event"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/domain/uow"
)

type Usecase struct {
	uow      uow.UnitOfWork
	onChange func(context.Context)
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// OnChange registers fn to run after writes that analytics read from.
func (u *Usecase) OnChange(fn func(context.Context)) { u.onChange = fn }

func (u *Usecase) notifyChange(ctx context.Context) {
	if u.onChange != nil {
		u.onChange(ctx)
	}
}

// Template returns the evaluation of a requirement, creating the empty form
// for accepted requirements that do not have one yet.
func (u *Usecase) Template(ctx context.Context, requirementID string) (*View, error) {
	var out View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requirements.GetByID(ctx, requirementID)
		if err != nil {
			return err
		}
		ev, err := r.Evaluations.GetByRequirementID(ctx, requirementID)
		switch {
		case err == nil:
		case apperr.Is(err, apperr.KindNotFound) && req.Status == decision.Approved:
			ev = &domainEvaluation.Evaluation{RequirementID: requirementID}
			if err := r.Evaluations.Create(ctx, ev); err != nil {
				return err
			}
		case apperr.Is(err, apperr.KindNotFound):
			return apperr.NotFound("evaluation is available once the requirement is accepted")
		default:
			return err
		}
		out = toView(ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit overwrites the answers and finalizes the evaluation.
func (u *Usecase) Submit(ctx context.Context, requirementID string, in SubmitInput) (*View, error) {
	criteria := bytes.TrimSpace(in.Criteria)
	if len(criteria) > 0 && !json.Valid(criteria) {
		return nil, apperr.Validation("criteria must be valid JSON", "criteria")
	}

	var out View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requirements.GetByID(ctx, requirementID)
		if err != nil {
			return err
		}
		if req.Status != decision.Approved {
			return apperr.Conflict("evaluation requires an accepted requirement")
		}
		ev, err := r.Evaluations.GetByRequirementID(ctx, requirementID)
		if apperr.Is(err, apperr.KindNotFound) {
			ev, err = &domainEvaluation.Evaluation{RequirementID: requirementID}, nil
		}
		if err != nil {
			return err
		}
		ev.Criteria = datatypes.JSON(criteria)
		ev.Q13 = in.Q13
		ev.Q14 = in.Q14
		ev.Comment = in.Comment
		ev.Recommendations = in.Recommendations
		ev.Finalized = true
		if ev.ID == 0 {
			err = r.Evaluations.Create(ctx, ev)
		} else {
			err = r.Evaluations.Save(ctx, ev)
		}
		if err != nil {
			return err
		}
		out = toView(ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	return &out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*View, error) {
	ev, err := u.uow.Repos().Evaluations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toView(ev)
	return &v, nil
}

func (u *Usecase) List(ctx context.Context) ([]View, error) {
	return u.list(ctx, domainEvaluation.Filter{})
}

func (u *Usecase) ListByEvent(ctx context.Context, kind domainEvent.Kind, eventID uint64) ([]View, error) {
	reqs, err := u.uow.Repos().Requirements.List(ctx, requirement.Filter{EventKind: kind, EventID: eventID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	return u.list(ctx, domainEvaluation.Filter{RequirementIDs: ids})
}

func (u *Usecase) list(ctx context.Context, f domainEvaluation.Filter) ([]View, error) {
	evs, err := u.uow.Repos().Evaluations.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(evs))
	for i := range evs {
		out = append(out, toView(&evs[i]))
	}
	return out, nil
}
