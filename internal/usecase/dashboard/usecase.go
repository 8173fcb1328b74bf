package dashboard

import (
	"context"
	"strings"
	"time"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
	domainEvent "vms-backend/internal/domain/event"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/domain/uow"
	eventUC "vms-backend/internal/usecase/event"
)

type Usecase struct {
	uow    uow.UnitOfWork
	events *eventUC.Usecase
	loc    *time.Location
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, events *eventUC.Usecase, loc *time.Location) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	return &Usecase{uow: tx, events: events, loc: loc, now: time.Now}
}

func tally(c *Counts, d decision.Decision) {
	c.Total++
	switch d {
	case decision.Approved:
		c.Approved++
	case decision.Rejected:
		c.Rejected++
	default:
		c.Pending++
	}
}

func (u *Usecase) Summary(ctx context.Context) (*Summary, error) {
	r := u.uow.Repos()
	out := &Summary{
		Accounts: map[string]int{},
		Events:   EventCounts{ByStatus: map[string]int{}},
	}

	members, err := r.Memberships.List(ctx, membership.Filter{})
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		tally(&out.Members, m.Status)
		if m.Active && m.Status == decision.Approved {
			out.ActiveMembers++
		}
	}

	accounts, err := r.Accounts.List(ctx, account.Filter{})
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		out.Accounts[string(a.AccountType)]++
	}

	events, err := r.Events.List(ctx, domainEvent.Filter{})
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i := range events {
		e := &events[i]
		out.Events.Total++
		out.Events.ByStatus[string(e.Status)]++
		if e.Kind == domainEvent.KindInternal {
			out.Events.Internal++
		} else {
			out.Events.External++
		}
		if e.Public() {
			out.Events.Public++
		}
		if t, ok := e.StartTime(); ok && t.After(now) {
			out.Events.Upcoming++
		}
	}

	reqs, err := r.Requirements.List(ctx, requirement.Filter{})
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		tally(&out.Requirements, req.Status)
	}

	evals, err := r.Evaluations.List(ctx, evaluation.Filter{FinalizedOnly: true})
	if err != nil {
		return nil, err
	}
	out.Evaluations = len(evals)
	return out, nil
}

// Monthly counts events by start month and sign-ups by creation month for
// one calendar year.
func (u *Usecase) Monthly(ctx context.Context, year int) (*Monthly, error) {
	if year == 0 {
		year = u.now().In(u.loc).Year()
	}
	r := u.uow.Repos()
	out := &Monthly{Year: year, Months: make([]MonthCount, 12), ByCollege: map[string]int{}}
	for i := range out.Months {
		out.Months[i].Month = i + 1
	}

	events, err := r.Events.List(ctx, domainEvent.Filter{})
	if err != nil {
		return nil, err
	}
	for i := range events {
		t, ok := events[i].StartTime()
		if !ok {
			continue
		}
		t = t.In(u.loc)
		if t.Year() != year {
			continue
		}
		m := &out.Months[t.Month()-1]
		if events[i].Kind == domainEvent.KindInternal {
			m.Internal++
		} else {
			m.External++
		}
	}

	reqs, err := r.Requirements.List(ctx, requirement.Filter{})
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		t := req.CreatedAt.In(u.loc)
		if t.Year() == year {
			out.Months[t.Month()-1].Requirements++
		}
	}

	members, err := r.Memberships.List(ctx, membership.Filter{Status: decision.Approved})
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		college := strings.TrimSpace(m.College)
		if college == "" {
			college = "Unspecified"
		}
		out.ByCollege[college]++
	}
	return out, nil
}

func (u *Usecase) ActiveMembers(ctx context.Context) ([]membership.Membership, error) {
	active := true
	return u.uow.Repos().Memberships.List(ctx, membership.Filter{Status: decision.Approved, Active: &active})
}

func (u *Usecase) EventDetail(ctx context.Context, kind domainEvent.Kind, id uint64) (*EventDetail, error) {
	e, err := u.events.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	a, err := u.events.Analyze(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &EventDetail{Event: e, Analysis: a}, nil
}
