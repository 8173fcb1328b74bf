package feedback

import (
	"context"
	"strings"

	"vms-backend/internal/domain/apperr"
	domainEvent "vms-backend/internal/domain/event"
	domainFeedback "vms-backend/internal/domain/feedback"
	"vms-backend/internal/domain/uow"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Create attaches the single feedback thread of an event.
func (u *Usecase) Create(ctx context.Context, kind domainEvent.Kind, eventID uint64, in CreateInput) (*domainFeedback.Feedback, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, apperr.Validation("message is required", "message")
	}
	f := &domainFeedback.Feedback{EventKind: kind, EventID: eventID, Message: msg, State: domainFeedback.StateEditing}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if e.Kind != kind {
			return apperr.NotFound(string(kind) + " event not found")
		}
		if _, err := r.Feedback.GetByEventID(ctx, eventID); err == nil {
			return apperr.Conflict("feedback already exists for this event")
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		if err := r.Feedback.Create(ctx, f); err != nil {
			return err
		}
		e.FeedbackID = &f.ID
		return r.Events.Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domainFeedback.Feedback, error) {
	return u.uow.Repos().Feedback.GetByID(ctx, id)
}

func (u *Usecase) GetByEvent(ctx context.Context, kind domainEvent.Kind, eventID uint64) (*domainFeedback.Feedback, error) {
	f, err := u.uow.Repos().Feedback.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if f.EventKind != kind {
		return nil, apperr.NotFound("feedback not found")
	}
	return f, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*domainFeedback.Feedback, error) {
	var out *domainFeedback.Feedback
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Feedback.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Message != nil {
			f.Message = strings.TrimSpace(*in.Message)
		}
		if in.State != nil {
			if !in.State.Valid() {
				return apperr.Validation("unknown feedback state", "state")
			}
			f.State = *in.State
		}
		if err := r.Feedback.Save(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
