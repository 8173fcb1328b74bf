package event

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
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

// Create stores a new editing event together with its signatories sheet.
func (u *Usecase) Create(ctx context.Context, kind domainEvent.Kind, in Input, createdBy uint64) (*domainEvent.Event, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("unknown event type", "eventType")
	}
	e := &domainEvent.Event{Kind: kind, CreatedBy: createdBy, Status: domainEvent.StatusEditing}
	if err := apply(e, in); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s := domainEvent.DefaultSignatories()
		if err := r.Signatories.Create(ctx, s); err != nil {
			return err
		}
		e.SignatoriesID = s.ID
		return r.Events.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (u *Usecase) Update(ctx context.Context, kind domainEvent.Kind, id uint64, in Input) (*domainEvent.Event, error) {
	var out *domainEvent.Event
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := get(ctx, r, kind, id)
		if err != nil {
			return err
		}
		if err := apply(e, in); err != nil {
			return err
		}
		if err := r.Events.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	return out, nil
}

// Transition runs one review action; illegal moves are conflicts.
func (u *Usecase) Transition(ctx context.Context, kind domainEvent.Kind, id uint64, action domainEvent.Action) (*domainEvent.Event, error) {
	var out *domainEvent.Event
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := get(ctx, r, kind, id)
		if err != nil {
			return err
		}
		if err := e.Apply(action); err != nil {
			if errors.Is(err, domainEvent.ErrInvalidTransition) {
				return apperr.Conflict("invalid status transition: cannot " + string(action) + " a " + string(e.Status) + " event")
			}
			return err
		}
		if err := r.Events.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, kind domainEvent.Kind, id uint64) (*domainEvent.Event, error) {
	return get(ctx, u.uow.Repos(), kind, id)
}

func (u *Usecase) List(ctx context.Context, f domainEvent.Filter) ([]domainEvent.Event, error) {
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, apperr.Validation("unknown event type", "eventType")
	}
	return u.uow.Repos().Events.List(ctx, f)
}

// ListPublic returns accepted events flagged for the public page, both kinds.
func (u *Usecase) ListPublic(ctx context.Context) ([]domainEvent.Event, error) {
	return u.uow.Repos().Events.List(ctx, domainEvent.Filter{PublicOnly: true})
}

// Delete removes the event and everything hanging off it.
func (u *Usecase) Delete(ctx context.Context, kind domainEvent.Kind, id uint64) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := get(ctx, r, kind, id)
		if err != nil {
			return err
		}
		reqs, err := r.Requirements.List(ctx, requirement.Filter{EventKind: kind, EventID: id})
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(reqs))
		for _, req := range reqs {
			ids = append(ids, req.ID)
		}
		if err := r.Evaluations.DeleteByRequirementIDs(ctx, ids); err != nil {
			return err
		}
		if err := r.Requirements.DeleteByEventID(ctx, id); err != nil {
			return err
		}
		rep, err := r.Reports.GetByEventID(ctx, id)
		switch {
		case err == nil:
			if err := r.Reports.Delete(ctx, rep.ID); err != nil {
				return err
			}
			if err := r.Signatories.Delete(ctx, rep.SignatoriesID); err != nil {
				return err
			}
		case !apperr.Is(err, apperr.KindNotFound):
			return err
		}
		if err := r.Feedback.DeleteByEventID(ctx, id); err != nil {
			return err
		}
		if err := r.Events.Delete(ctx, e.ID); err != nil {
			return err
		}
		return r.Signatories.Delete(ctx, e.SignatoriesID)
	})
	if err != nil {
		return err
	}
	u.notifyChange(ctx)
	return nil
}

func (u *Usecase) GetSignatories(ctx context.Context, kind domainEvent.Kind, id uint64) (*domainEvent.Signatories, error) {
	r := u.uow.Repos()
	e, err := get(ctx, r, kind, id)
	if err != nil {
		return nil, err
	}
	return r.Signatories.GetByID(ctx, e.SignatoriesID)
}

func (u *Usecase) UpdateSignatories(ctx context.Context, kind domainEvent.Kind, id uint64, in SignatoriesInput) (*domainEvent.Signatories, error) {
	var out *domainEvent.Signatories
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := get(ctx, r, kind, id)
		if err != nil {
			return err
		}
		s, err := r.Signatories.GetByID(ctx, e.SignatoriesID)
		if err != nil {
			return err
		}
		s.PreparedBy, s.PreparedByTitle = in.PreparedBy, in.PreparedByTitle
		s.ReviewedBy, s.ReviewedByTitle = in.ReviewedBy, in.ReviewedByTitle
		s.RecommendingApproval1, s.RecommendingApproval1Title = in.RecommendingApproval1, in.RecommendingApproval1Title
		s.RecommendingApproval2, s.RecommendingApproval2Title = in.RecommendingApproval2, in.RecommendingApproval2Title
		s.ApprovedBy, s.ApprovedByTitle = in.ApprovedBy, in.ApprovedByTitle
		if err := r.Signatories.Save(ctx, s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Analyze aggregates the requirements and evaluations of one event.
func (u *Usecase) Analyze(ctx context.Context, kind domainEvent.Kind, id uint64) (*Analysis, error) {
	r := u.uow.Repos()
	e, err := get(ctx, r, kind, id)
	if err != nil {
		return nil, err
	}
	reqs, err := r.Requirements.List(ctx, requirement.Filter{EventKind: kind, EventID: id})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reqs))
	out := &Analysis{
		EventID:          e.ID,
		EventType:        e.Kind,
		Title:            e.Title,
		Status:           e.Status,
		CriteriaAverages: map[string]float64{},
		Recommendations:  []string{},
	}
	for _, req := range reqs {
		ids = append(ids, req.ID)
		out.Requirements.Total++
		switch req.Status {
		case decision.Approved:
			out.Requirements.Accepted++
		case decision.Rejected:
			out.Requirements.Rejected++
		default:
			out.Requirements.Pending++
		}
	}
	evals, err := r.Evaluations.List(ctx, evaluation.Filter{RequirementIDs: ids})
	if err != nil {
		return nil, err
	}
	summarize(out, evals)
	return out, nil
}

func summarize(out *Analysis, evals []evaluation.Evaluation) {
	var (
		satSum, volSum, benSum float64
		volN, benN             int
		critSum                = map[string]float64{}
		critN                  = map[string]int{}
		comments               []string
	)
	out.Evaluations = len(evals)
	for i := range evals {
		ev := &evals[i]
		if !ev.Finalized {
			continue
		}
		out.Finalized++
		if ev.Attended() {
			out.Attended++
		}
		satSum += analytics.OverallScore(ev.Criteria, ev.Q13, ev.Q14)
		if v, ok := analytics.ParseScore(ev.Q13); ok {
			volSum += v
			volN++
		}
		if v, ok := analytics.ParseScore(ev.Q14); ok {
			benSum += v
			benN++
		}
		for k, v := range analytics.ParseCriteria(ev.Criteria).Numeric() {
			critSum[k] += v
			critN[k]++
		}
		if s := strings.TrimSpace(ev.Recommendations); s != "" {
			out.Recommendations = append(out.Recommendations, s)
		}
		comments = append(comments, ev.Comment, ev.Recommendations)
	}
	out.AttendanceRate = analytics.AttendanceRate(out.Attended, out.Requirements.Accepted)
	out.AverageSatisfaction = mean(satSum, out.Finalized)
	out.AverageVolunteerScore = mean(volSum, volN)
	out.AverageBeneficiaryScore = mean(benSum, benN)
	keys := make([]string, 0, len(critSum))
	for k := range critSum {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.CriteriaAverages[k] = mean(critSum[k], critN[k])
	}
	out.TopIssues = analytics.TopIssues(comments)
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return analytics.Round2(sum / float64(n))
}

// get loads an event and hides it when the route kind does not match.
func get(ctx context.Context, r uow.Repos, kind domainEvent.Kind, id uint64) (*domainEvent.Event, error) {
	e, err := r.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kind != "" && e.Kind != kind {
		return nil, apperr.NotFound(string(kind) + " event not found")
	}
	return e, nil
}

func apply(e *domainEvent.Event, in Input) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return apperr.Validation("title is required", "title")
	}
	e.Title = title
	e.DurationStart = in.DurationStart
	e.DurationEnd = in.DurationEnd
	e.Venue = in.Venue
	e.Description = in.Description
	e.Objectives = in.Objectives
	e.OrganizedBy = in.OrganizedBy
	e.EvaluationSendTime = in.EvaluationSendTime
	if err := e.ValidateDuration(); err != nil {
		return apperr.Validation(err.Error(), "durationStart", "durationEnd")
	}
	switch e.Kind {
	case domainEvent.KindInternal:
		if in.Internal != nil {
			e.Internal = *in.Internal
		}
	case domainEvent.KindExternal:
		if in.External != nil {
			e.External = *in.External
		}
	}
	return nil
}
