package requirement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/blob"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
	domainEvent "vms-backend/internal/domain/event"
	"vms-backend/internal/domain/notify"
	domainRequirement "vms-backend/internal/domain/requirement"
	"vms-backend/internal/domain/uow"
)

type Usecase struct {
	uow    uow.UnitOfWork
	blobs  blob.Store
	mailer notify.Mailer
	now    func() time.Time

	onChange func(context.Context)
}

func NewUsecase(tx uow.UnitOfWork, blobs blob.Store, mailer notify.Mailer) *Usecase {
	return &Usecase{uow: tx, blobs: blobs, mailer: mailer, now: time.Now}
}

// OnChange registers fn to run after writes that analytics read from.
func (u *Usecase) OnChange(fn func(context.Context)) { u.onChange = fn }

func (u *Usecase) notifyChange(ctx context.Context) {
	if u.onChange != nil {
		u.onChange(ctx)
	}
}

// Create signs a volunteer up for an accepted event. Both documents are
// stored first and removed again if the row cannot be written.
func (u *Usecase) Create(ctx context.Context, kind domainEvent.Kind, eventID uint64, in CreateInput, medCert, waiver *blob.File) (*domainRequirement.Requirement, error) {
	in.Fullname = strings.TrimSpace(in.Fullname)
	in.Email = strings.TrimSpace(in.Email)
	var missing []string
	if in.Fullname == "" {
		missing = append(missing, "fullname")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if medCert == nil {
		missing = append(missing, "medCert")
	}
	if waiver == nil {
		missing = append(missing, "waiver")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields", missing...)
	}

	e, err := u.uow.Repos().Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Kind != kind {
		return nil, apperr.NotFound(string(kind) + " event not found")
	}
	if e.Status != domainEvent.StatusAccepted {
		return nil, apperr.Conflict("event is not open for volunteers")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	req := &domainRequirement.Requirement{
		ID:        id,
		EventKind: kind,
		EventID:   eventID,
		Status:    decision.Pending,
		Applicant: in.Applicant,
	}

	if req.MedCert, err = u.store(ctx, *medCert, "medCert"); err != nil {
		return nil, err
	}
	if req.Waiver, err = u.store(ctx, *waiver, "waiver"); err != nil {
		_ = u.blobs.Delete(ctx, req.MedCert)
		return nil, err
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Requirements.GetByID(ctx, id); err == nil {
			return apperr.Conflict("requirement id already used", "id")
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return r.Requirements.Create(ctx, req)
	})
	if err != nil {
		_ = u.blobs.Delete(ctx, req.MedCert)
		_ = u.blobs.Delete(ctx, req.Waiver)
		return nil, err
	}
	return req, nil
}

func (u *Usecase) store(ctx context.Context, f blob.File, field string) (string, error) {
	ref, err := u.blobs.Save(ctx, f)
	switch {
	case errors.Is(err, blob.ErrTooLarge), errors.Is(err, blob.ErrUnsupportedType):
		return "", apperr.Validation(err.Error(), field)
	case err != nil:
		return "", apperr.Transient("could not store upload", err)
	}
	return ref, nil
}

// Accept approves the sign-up, prepares the volunteer's evaluation form and
// schedules the reminder for the event's evaluation time.
func (u *Usecase) Accept(ctx context.Context, id string) (*domainRequirement.Requirement, error) {
	var (
		out     *domainRequirement.Requirement
		ev      *domainEvent.Event
		changed bool
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requirements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		changed = req.Status != decision.Approved
		req.Status = decision.Approved
		if err := r.Requirements.Save(ctx, req); err != nil {
			return err
		}
		if _, err := r.Evaluations.GetByRequirementID(ctx, id); apperr.Is(err, apperr.KindNotFound) {
			if err := r.Evaluations.Create(ctx, &evaluation.Evaluation{RequirementID: id}); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		ev, err = r.Events.GetByID(ctx, req.EventID)
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	if changed && ev != nil {
		u.notifyAccepted(out, ev)
	}
	return out, nil
}

func (u *Usecase) notifyAccepted(req *domainRequirement.Requirement, ev *domainEvent.Event) {
	data := map[string]any{"name": req.Fullname, "event": ev.Title, "requirementId": req.ID}
	u.mailer.Enqueue(notify.Message{
		To:       req.Email,
		ToName:   req.Fullname,
		Subject:  "Requirements accepted: " + ev.Title,
		Template: notify.TemplateRequirementAccepted,
		Data:     data,
	})
	u.mailer.EnqueueAt(reminderTime(ev, u.now()), notify.Message{
		To:       req.Email,
		ToName:   req.Fullname,
		Subject:  "Evaluation for " + ev.Title,
		Template: notify.TemplateEvaluationReminder,
		Data:     data,
	})
}

// reminderTime prefers the configured evaluation time, then the event end.
func reminderTime(ev *domainEvent.Event, now time.Time) time.Time {
	for _, ms := range []*int64{ev.EvaluationSendTime, ev.DurationEnd} {
		if ms != nil && *ms > 0 {
			if at := time.UnixMilli(*ms); at.After(now) {
				return at
			}
			return now
		}
	}
	return now
}

func (u *Usecase) Reject(ctx context.Context, id string) (*domainRequirement.Requirement, error) {
	var out *domainRequirement.Requirement
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requirements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		req.Status = decision.Rejected
		if err := r.Requirements.Save(ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notifyChange(ctx)
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id string) (*domainRequirement.Requirement, error) {
	return u.uow.Repos().Requirements.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, f domainRequirement.Filter) ([]domainRequirement.Requirement, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("unknown status", "status")
	}
	return u.uow.Repos().Requirements.List(ctx, f)
}

func (u *Usecase) ListByEvent(ctx context.Context, kind domainEvent.Kind, eventID uint64) ([]domainRequirement.Requirement, error) {
	return u.List(ctx, domainRequirement.Filter{EventKind: kind, EventID: eventID})
}
