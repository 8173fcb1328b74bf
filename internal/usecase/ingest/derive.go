package ingest

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/evaluation"
	"vms-backend/internal/domain/event"
	"vms-backend/internal/domain/membership"
	"vms-backend/internal/domain/requirement"
	"vms-backend/internal/domain/uow"
)

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// Sources is a snapshot of the operational tables the derivations read.
type Sources struct {
	Events       []event.Event
	Requirements []requirement.Requirement
	Evaluations  []evaluation.Evaluation
	Memberships  []membership.Membership
}

func LoadSources(ctx context.Context, r uow.Repos) (*Sources, error) {
	var (
		src Sources
		err error
	)
	if src.Events, err = r.Events.List(ctx, event.Filter{}); err != nil {
		return nil, err
	}
	if src.Requirements, err = r.Requirements.List(ctx, requirement.Filter{}); err != nil {
		return nil, err
	}
	if src.Evaluations, err = r.Evaluations.List(ctx, evaluation.Filter{}); err != nil {
		return nil, err
	}
	if src.Memberships, err = r.Memberships.List(ctx, membership.Filter{}); err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *Sources) eventsByID() map[uint64]*event.Event {
	out := make(map[uint64]*event.Event, len(s.Events))
	for i := range s.Events {
		out[s.Events[i].ID] = &s.Events[i]
	}
	return out
}

func (s *Sources) requirementsByID() map[string]*requirement.Requirement {
	out := make(map[string]*requirement.Requirement, len(s.Requirements))
	for i := range s.Requirements {
		out[s.Requirements[i].ID] = &s.Requirements[i]
	}
	return out
}

// DeriveSurveys turns every finalized evaluation into one satisfaction survey
// keyed by (requirement, respondent email). Surveys are dated by the event
// start, or by the evaluation submission when the event has no start.
func DeriveSurveys(src *Sources) []analytics.SatisfactionSurvey {
	events := src.eventsByID()
	reqs := src.requirementsByID()

	out := make([]analytics.SatisfactionSurvey, 0, len(src.Evaluations))
	for i := range src.Evaluations {
		ev := &src.Evaluations[i]
		if !ev.Finalized {
			continue
		}
		req, ok := reqs[ev.RequirementID]
		if !ok {
			continue
		}
		submitted := ev.UpdatedAt.UnixMilli()
		if e, ok := events[req.EventID]; ok && e.Kind == req.EventKind {
			if t, ok := e.StartTime(); ok {
				submitted = t.UnixMilli()
			}
		}
		crit := analytics.ParseCriteria(ev.Criteria)
		s := analytics.SatisfactionSurvey{
			EventID:             req.EventID,
			EventKind:           req.EventKind,
			RequirementID:       req.ID,
			RespondentEmail:     req.VolunteerKey(),
			RespondentName:      strings.TrimSpace(req.Fullname),
			RespondentType:      analytics.RespondentTypeOf(ev.Q13, ev.Q14),
			OverallSatisfaction: analytics.OverallScore(ev.Criteria, ev.Q13, ev.Q14),
			Feedback:            feedbackText(ev),
			SubmittedAt:         submitted,
			Finalized:           true,
		}
		s.VolunteerScore, _ = analytics.ParseScore(ev.Q13)
		s.BeneficiaryScore, _ = analytics.ParseScore(ev.Q14)
		s.Organization, _ = crit.Value("organization")
		s.Communication, _ = crit.Value("communication")
		s.Venue, _ = crit.Value("venue")
		s.Materials, _ = crit.Value("materials")
		s.Support, _ = crit.Value("support")
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequirementID != out[j].RequirementID {
			return out[i].RequirementID < out[j].RequirementID
		}
		return out[i].RespondentEmail < out[j].RespondentEmail
	})
	return out
}

func feedbackText(ev *evaluation.Evaluation) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{ev.Comment, ev.Recommendations} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// DeriveSemesterSatisfaction rolls surveys up per semester of submission.
func DeriveSemesterSatisfaction(surveys []analytics.SatisfactionSurvey, loc *time.Location) []analytics.SemesterSatisfaction {
	type acc struct {
		sem               analytics.Semester
		overall, vol, ben float64
		n, volN, benN     int
		events            map[uint64]struct{}
		comments          []string
	}
	buckets := map[analytics.Semester]*acc{}
	for i := range surveys {
		s := &surveys[i]
		sem := analytics.SemesterOf(time.UnixMilli(s.SubmittedAt).In(loc))
		b, ok := buckets[sem]
		if !ok {
			b = &acc{sem: sem, events: map[uint64]struct{}{}}
			buckets[sem] = b
		}
		b.n++
		b.overall += s.OverallSatisfaction
		if s.RespondentType != analytics.RespondentBeneficiary && s.VolunteerScore > 0 {
			b.vol += s.VolunteerScore
			b.volN++
		}
		if s.RespondentType != analytics.RespondentVolunteer && s.BeneficiaryScore > 0 {
			b.ben += s.BeneficiaryScore
			b.benN++
		}
		b.events[s.EventID] = struct{}{}
		if s.Feedback != "" {
			b.comments = append(b.comments, s.Feedback)
		}
	}

	out := make([]analytics.SemesterSatisfaction, 0, len(buckets))
	for _, b := range buckets {
		ids := make([]uint64, 0, len(b.events))
		for id := range b.events {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		idJSON, _ := json.Marshal(ids)
		issueJSON, _ := json.Marshal(analytics.TopIssues(b.comments))
		out = append(out, analytics.SemesterSatisfaction{
			Year:             b.sem.Year,
			Semester:         b.sem.Number,
			Overall:          avg(b.overall, b.n),
			Volunteers:       avg(b.vol, b.volN),
			Beneficiaries:    avg(b.ben, b.benN),
			TotalEvaluations: b.n,
			EventIDs:         datatypes.JSON(idJSON),
			TopIssues:        datatypes.JSON(issueJSON),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return analytics.Semester{Year: out[i].Year, Number: out[i].Semester}.
			Before(analytics.Semester{Year: out[j].Year, Number: out[j].Semester})
	})
	return out
}

// DeriveParticipation counts, per volunteer and semester, the accepted
// sign-ups for dated accepted events and how many of them were attended.
func DeriveParticipation(src *Sources, loc *time.Location) []analytics.ParticipationHistory {
	events := src.eventsByID()
	attended := make(map[string]bool, len(src.Evaluations))
	for i := range src.Evaluations {
		if src.Evaluations[i].Attended() {
			attended[src.Evaluations[i].RequirementID] = true
		}
	}
	members := make(map[string]uint64, len(src.Memberships))
	for _, m := range src.Memberships {
		members[strings.ToLower(strings.TrimSpace(m.Email))] = m.ID
	}

	type acc struct {
		row         analytics.ParticipationHistory
		first, last int64
		nameAt      int64
	}
	buckets := map[string]*acc{}
	for i := range src.Requirements {
		req := &src.Requirements[i]
		if req.Status != decision.Approved {
			continue
		}
		e, ok := events[req.EventID]
		if !ok || e.Kind != req.EventKind || e.Status != event.StatusAccepted {
			continue
		}
		start, ok := e.StartTime()
		email := req.VolunteerKey()
		if !ok || email == "" {
			continue
		}
		sem := analytics.SemesterOf(start.In(loc))
		at := start.UnixMilli()
		key := email + "|" + sem.String()
		b, ok := buckets[key]
		if !ok {
			b = &acc{first: at, last: at, nameAt: at}
			b.row = analytics.ParticipationHistory{
				VolunteerEmail: email,
				VolunteerName:  strings.TrimSpace(req.Fullname),
				Semester:       sem.String(),
				SemesterYear:   sem.Year,
				SemesterNumber: sem.Number,
			}
			buckets[key] = b
		}
		b.row.EventsJoined++
		if attended[req.ID] {
			b.row.EventsAttended++
		}
		if at < b.first {
			b.first = at
		}
		if at > b.last {
			b.last = at
		}
		if at > b.nameAt {
			b.nameAt = at
			b.row.VolunteerName = strings.TrimSpace(req.Fullname)
		}
	}

	out := make([]analytics.ParticipationHistory, 0, len(buckets))
	for _, b := range buckets {
		h := b.row
		if id, ok := members[h.VolunteerEmail]; ok {
			id := id
			h.MembershipID = &id
		}
		first, last := b.first, b.last
		h.FirstEventDate, h.LastEventDate = &first, &last
		h.DaysActiveInSemester = int((last-first)/dayMillis) + 1
		h.EventsDropped = h.EventsJoined - h.EventsAttended
		h.AttendanceRate = analytics.AttendanceRate(h.EventsAttended, h.EventsJoined)
		h.EngagementLevel = analytics.EngagementOf(h.EventsAttended, h.AttendanceRate)
		h.ParticipationConsistency = analytics.ConsistencyOf(h.EventsAttended, h.AttendanceRate)
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Semester != out[j].Semester {
			return out[i].Semester < out[j].Semester
		}
		return out[i].VolunteerEmail < out[j].VolunteerEmail
	})
	return out
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return analytics.Round2(sum / float64(n))
}
