package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/blob"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
	domainEvent "vms-backend/internal/domain/event"
	domainReport "vms-backend/internal/domain/report"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/domain/uow"
)

type Usecase struct {
	uow   uow.UnitOfWork
	blobs blob.Store
}

func NewUsecase(tx uow.UnitOfWork, blobs blob.Store) *Usecase {
	return &Usecase{uow: tx, blobs: blobs}
}

// Create files the one post-event report of an event. Budget figures are only
// kept for internal events.
func (u *Usecase) Create(ctx context.Context, kind domainEvent.Kind, eventID uint64, in CreateInput, photos []blob.File) (*domainReport.Report, error) {
	narrative := strings.TrimSpace(in.Narrative)
	if narrative == "" {
		return nil, apperr.Validation("narrative is required", "narrative")
	}
	r := u.uow.Repos()
	e, err := r.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Kind != kind {
		return nil, apperr.NotFound(string(kind) + " event not found")
	}
	if _, err := r.Reports.GetByEventID(ctx, eventID); err == nil {
		return nil, apperr.Conflict("event already has a report")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	refs := make([]string, 0, len(photos))
	cleanup := func() {
		for _, ref := range refs {
			_ = u.blobs.Delete(ctx, ref)
		}
	}
	for _, p := range photos {
		ref, err := u.blobs.Save(ctx, p)
		if err != nil {
			cleanup()
			if errors.Is(err, blob.ErrTooLarge) || errors.Is(err, blob.ErrUnsupportedType) {
				return nil, apperr.Validation(err.Error(), "photos")
			}
			return nil, apperr.Transient("could not store upload", err)
		}
		refs = append(refs, ref)
	}
	captions := in.PhotoCaptions
	if captions == nil {
		captions = []string{}
	}
	photoJSON, _ := json.Marshal(refs)
	captionJSON, _ := json.Marshal(captions)

	rep := &domainReport.Report{
		EventKind:     kind,
		EventID:       eventID,
		Narrative:     narrative,
		Photos:        datatypes.JSON(photoJSON),
		PhotoCaptions: datatypes.JSON(captionJSON),
	}
	if kind == domainEvent.KindInternal && in.Budget != nil {
		rep.Budget = *in.Budget
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s := domainEvent.DefaultSignatories()
		if err := r.Signatories.Create(ctx, s); err != nil {
			return err
		}
		rep.SignatoriesID = s.ID
		return r.Reports.Create(ctx, rep)
	})
	if err != nil {
		cleanup()
		return nil, err
	}
	return rep, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domainReport.Report, error) {
	return u.uow.Repos().Reports.GetByID(ctx, id)
}

func (u *Usecase) GetByEvent(ctx context.Context, kind domainEvent.Kind, eventID uint64) (*domainReport.Report, error) {
	rep, err := u.uow.Repos().Reports.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if rep.EventKind != kind {
		return nil, apperr.NotFound("report not found")
	}
	return rep, nil
}

// Delete drops the report, its signatories and its photos.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	var photos []string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rep, err := r.Reports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		_ = json.Unmarshal(rep.Photos, &photos)
		if err := r.Reports.Delete(ctx, id); err != nil {
			return err
		}
		return r.Signatories.Delete(ctx, rep.SignatoriesID)
	})
	if err != nil {
		return err
	}
	for _, p := range photos {
		_ = u.blobs.Delete(ctx, p)
	}
	return nil
}

func (u *Usecase) Analytics(ctx context.Context, kind domainEvent.Kind, eventID uint64) (*Analytics, error) {
	r := u.uow.Repos()
	e, err := r.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Kind != kind {
		return nil, apperr.NotFound(string(kind) + " event not found")
	}
	out := &Analytics{EventID: e.ID, EventType: e.Kind, Title: e.Title}

	rep, err := r.Reports.GetByEventID(ctx, eventID)
	switch {
	case err == nil:
		var photos []string
		_ = json.Unmarshal(rep.Photos, &photos)
		out.HasReport = true
		out.PhotoCount = len(photos)
		out.BudgetUtilized = rep.BudgetUtilized
		out.PSAttribution = rep.PSAttribution
	case !apperr.Is(err, apperr.KindNotFound):
		return nil, err
	}

	reqs, err := r.Requirements.List(ctx, requirement.Filter{EventKind: kind, EventID: eventID, Status: decision.Approved})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ID)
	}
	evals, err := r.Evaluations.List(ctx, evaluation.Filter{RequirementIDs: ids, FinalizedOnly: true})
	if err != nil {
		return nil, err
	}
	var sum float64
	for i := range evals {
		if evals[i].Attended() {
			out.Attended++
		}
		sum += analytics.OverallScore(evals[i].Criteria, evals[i].Q13, evals[i].Q14)
	}
	out.Volunteers = len(reqs)
	out.Evaluations = len(evals)
	out.AttendanceRate = analytics.AttendanceRate(out.Attended, out.Volunteers)
	if len(evals) > 0 {
		out.AverageSatisfaction = analytics.Round2(sum / float64(len(evals)))
	}

	switch kind {
	case domainEvent.KindInternal:
		out.TargetParticipants = e.Internal.TargetParticipants
		if t := e.Internal.TargetParticipants; t > 0 {
			out.TargetReachRate = analytics.AttendanceRate(out.Attended, t)
		}
	case domainEvent.KindExternal:
		out.TotalCost = e.External.TotalCost
		if out.Attended > 0 {
			out.CostPerVolunteer = analytics.Round2(e.External.TotalCost / float64(out.Attended))
		}
	}
	return out, nil
}
