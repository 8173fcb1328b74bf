package analytics

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	domainAnalytics "vms-backend/internal/domain/analytics"
	"vms-backend/internal/usecase/ingest"
)

// point is one satisfaction answer, from a survey or straight from an evaluation.
type point struct {
	eventID        uint64
	sem            domainAnalytics.Semester
	score          float64
	vol, ben       float64
	hasVol, hasBen bool
	respondent     domainAnalytics.RespondentType
	comment        string
}

// points reads surveys for eventID (0 = all events). Before the first
// rebuild it falls back to finalized evaluations, dated by their event.
func (u *Usecase) points(ctx context.Context, eventID uint64) ([]point, error) {
	r := u.uow.Repos()
	surveys, err := r.Analytics.ListSurveys(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(surveys) == 0 {
		src, err := ingest.LoadSources(ctx, r)
		if err != nil {
			return nil, err
		}
		surveys = ingest.DeriveSurveys(src)
		started := make(map[uint64]bool, len(src.Events))
		for i := range src.Events {
			_, ok := src.Events[i].StartTime()
			started[src.Events[i].ID] = ok
		}
		now := u.now().UnixMilli()
		kept := surveys[:0]
		for _, s := range surveys {
			if eventID != 0 && s.EventID != eventID {
				continue
			}
			// undated events are bucketed into the current semester
			if !started[s.EventID] {
				s.SubmittedAt = now
			}
			kept = append(kept, s)
		}
		surveys = kept
	}

	out := make([]point, 0, len(surveys))
	for i := range surveys {
		s := &surveys[i]
		p := point{
			eventID:    s.EventID,
			sem:        domainAnalytics.SemesterOf(time.UnixMilli(s.SubmittedAt).In(u.loc())),
			score:      s.OverallSatisfaction,
			vol:        s.VolunteerScore,
			ben:        s.BeneficiaryScore,
			respondent: s.RespondentType,
			comment:    s.Feedback,
		}
		p.hasVol = s.RespondentType != domainAnalytics.RespondentBeneficiary && s.VolunteerScore > 0
		p.hasBen = s.RespondentType != domainAnalytics.RespondentVolunteer && s.BeneficiaryScore > 0
		out = append(out, p)
	}
	return out, nil
}

// SatisfactionBySemester uses the semester rollup when it exists and
// aggregates live points otherwise.
func (u *Usecase) SatisfactionBySemester(ctx context.Context) ([]SemesterScore, error) {
	return cached(ctx, u, "satisfaction:semesters", func() ([]SemesterScore, error) {
		rows, err := u.uow.Repos().Analytics.ListSemesterSatisfaction(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			out := make([]SemesterScore, 0, len(rows))
			for _, row := range rows {
				sem := domainAnalytics.Semester{Year: row.Year, Number: row.Semester}
				s := SemesterScore{
					Semester:         sem.String(),
					Label:            sem.Label(),
					Year:             sem.Year,
					Number:           sem.Number,
					Score:            row.Overall,
					Volunteers:       row.Volunteers,
					Beneficiaries:    row.Beneficiaries,
					TotalEvaluations: row.TotalEvaluations,
				}
				_ = json.Unmarshal(row.EventIDs, &s.EventIDs)
				_ = json.Unmarshal(row.TopIssues, &s.TopIssues)
				out = append(out, normalize(s))
			}
			return out, nil
		}

		pts, err := u.points(ctx, 0)
		if err != nil {
			return nil, err
		}
		return groupBySemester(pts), nil
	})
}

func groupBySemester(pts []point) []SemesterScore {
	type acc struct {
		score, vol, ben float64
		n, volN, benN   int
		events          map[uint64]struct{}
		comments        []string
	}
	buckets := map[domainAnalytics.Semester]*acc{}
	for _, p := range pts {
		b, ok := buckets[p.sem]
		if !ok {
			b = &acc{events: map[uint64]struct{}{}}
			buckets[p.sem] = b
		}
		b.n++
		b.score += p.score
		if p.hasVol {
			b.vol += p.vol
			b.volN++
		}
		if p.hasBen {
			b.ben += p.ben
			b.benN++
		}
		b.events[p.eventID] = struct{}{}
		if p.comment != "" {
			b.comments = append(b.comments, p.comment)
		}
	}
	sems := make([]domainAnalytics.Semester, 0, len(buckets))
	for s := range buckets {
		sems = append(sems, s)
	}
	sort.Slice(sems, func(i, j int) bool { return sems[i].Before(sems[j]) })

	out := make([]SemesterScore, 0, len(sems))
	for _, sem := range sems {
		b := buckets[sem]
		ids := make([]uint64, 0, len(b.events))
		for id := range b.events {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, normalize(SemesterScore{
			Semester:         sem.String(),
			Label:            sem.Label(),
			Year:             sem.Year,
			Number:           sem.Number,
			Score:            mean(b.score, b.n),
			Volunteers:       mean(b.vol, b.volN),
			Beneficiaries:    mean(b.ben, b.benN),
			TotalEvaluations: b.n,
			EventIDs:         ids,
			TopIssues:        domainAnalytics.TopIssues(b.comments),
		}))
	}
	return out
}

func normalize(s SemesterScore) SemesterScore {
	if s.EventIDs == nil {
		s.EventIDs = []uint64{}
	}
	if s.TopIssues == nil {
		s.TopIssues = []domainAnalytics.IssueCount{}
	}
	return s
}

func (u *Usecase) EventSatisfaction(ctx context.Context, eventID uint64) (*EventSatisfaction, error) {
	if _, err := u.uow.Repos().Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return cached(ctx, u, "satisfaction:event:"+strconv.FormatUint(eventID, 10), func() (*EventSatisfaction, error) {
		pts, err := u.points(ctx, eventID)
		if err != nil {
			return nil, err
		}
		out := &EventSatisfaction{
			EventID:      eventID,
			Respondents:  map[string]int{},
			Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		}
		var score, vol, ben float64
		var volN, benN int
		comments := make([]string, 0, len(pts))
		for _, p := range pts {
			out.TotalEvaluations++
			score += p.score
			if p.hasVol {
				vol += p.vol
				volN++
			}
			if p.hasBen {
				ben += p.ben
				benN++
			}
			out.Respondents[string(p.respondent)]++
			if bucket := int(math.Round(p.score)); bucket >= 1 && bucket <= 5 {
				out.Distribution[bucket]++
			}
			comments = append(comments, p.comment)
		}
		out.Score = mean(score, out.TotalEvaluations)
		out.Volunteers = mean(vol, volN)
		out.Beneficiaries = mean(ben, benN)
		out.TopIssues = domainAnalytics.TopIssues(comments)
		return out, nil
	})
}
