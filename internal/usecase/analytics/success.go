package analytics

import (
	"context"
	"fmt"
	"sort"

	domainAnalytics "vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/event"
)

func invalidSemester() error {
	return apperr.Validation("semester must look like YYYY-1 or YYYY-2", "semester")
}

// EventSuccess summarizes review outcomes and turnout, optionally for one
// semester ("YYYY-S"). Undated events only count in the unfiltered view.
func (u *Usecase) EventSuccess(ctx context.Context, semester string) (*EventSuccess, error) {
	var filter *domainAnalytics.Semester
	if semester != "" {
		sem, err := domainAnalytics.ParseSemester(semester)
		if err != nil {
			return nil, invalidSemester()
		}
		filter = &sem
	}
	return cached(ctx, u, "success:"+semester, func() (*EventSuccess, error) {
		events, err := u.uow.Repos().Events.List(ctx, event.Filter{})
		if err != nil {
			return nil, err
		}
		rows, _, err := u.history(ctx, domainAnalytics.HistoryFilter{Semester: semester})
		if err != nil {
			return nil, err
		}
		pts, err := u.points(ctx, 0)
		if err != nil {
			return nil, err
		}

		out := &EventSuccess{Semester: semester, BySemester: []SemesterSuccess{}}
		bySem := map[domainAnalytics.Semester]*SemesterSuccess{}
		semOf := func(s domainAnalytics.Semester) *SemesterSuccess {
			b, ok := bySem[s]
			if !ok {
				b = &SemesterSuccess{Semester: s.String(), Label: s.Label()}
				bySem[s] = b
			}
			return b
		}
		for i := range events {
			e := &events[i]
			var sem *domainAnalytics.Semester
			if t, ok := e.StartTime(); ok {
				s := domainAnalytics.SemesterOf(t.In(u.loc()))
				sem = &s
			}
			if filter != nil && (sem == nil || *sem != *filter) {
				continue
			}
			out.TotalEvents++
			if e.Kind == event.KindInternal {
				out.Internal++
			} else {
				out.External++
			}
			switch e.Status {
			case event.StatusEditing:
				out.Editing++
			case event.StatusSubmitted:
				out.Submitted++
			case event.StatusAccepted:
				out.Accepted++
			case event.StatusRejected:
				out.Rejected++
			}
			if e.Public() {
				out.Public++
			}
			if sem != nil {
				b := semOf(*sem)
				b.Events++
				if e.Status == event.StatusAccepted {
					b.Accepted++
				}
			}
		}
		if out.TotalEvents > 0 {
			out.SuccessRate = domainAnalytics.Round2(100 * float64(out.Accepted) / float64(out.TotalEvents))
		}

		volunteers := map[string]struct{}{}
		var rateSum float64
		for _, h := range rows {
			volunteers[h.VolunteerEmail] = struct{}{}
			rateSum += h.AttendanceRate
			if sem, err := domainAnalytics.ParseSemester(h.Semester); err == nil {
				b := semOf(sem)
				b.Volunteers++
				b.Attended += h.EventsAttended
			}
		}
		out.TotalVolunteers = len(volunteers)
		out.AverageAttendance = mean(rateSum, len(rows))

		var satSum float64
		var satN int
		for _, p := range pts {
			if filter != nil && p.sem != *filter {
				continue
			}
			satSum += p.score
			satN++
		}
		out.AverageSatisfaction = mean(satSum, satN)

		joined := map[domainAnalytics.Semester]int{}
		for _, h := range rows {
			if sem, err := domainAnalytics.ParseSemester(h.Semester); err == nil {
				joined[sem] += h.EventsJoined
			}
		}
		sems := make([]domainAnalytics.Semester, 0, len(bySem))
		for s := range bySem {
			sems = append(sems, s)
		}
		sort.Slice(sems, func(i, j int) bool { return sems[i].Before(sems[j]) })
		for _, s := range sems {
			b := bySem[s]
			b.AttendanceRate = domainAnalytics.AttendanceRate(b.Attended, joined[s])
			out.BySemester = append(out.BySemester, *b)
		}
		return out, nil
	})
}

// Insights turns the other analytics into prioritized recommendations.
func (u *Usecase) Insights(ctx context.Context) (*Insights, error) {
	return cached(ctx, u, "insights", func() (*Insights, error) {
		dropout, err := u.DropoutRisk(ctx)
		if err != nil {
			return nil, err
		}
		sat, err := u.SatisfactionBySemester(ctx)
		if err != nil {
			return nil, err
		}
		success, err := u.EventSuccess(ctx, "")
		if err != nil {
			return nil, err
		}
		return &Insights{GeneratedAt: u.now().UTC(), Insights: buildInsights(dropout, sat, success)}, nil
	})
}

func buildInsights(d *DropoutReport, sat []SemesterScore, s *EventSuccess) []Insight {
	out := []Insight{}
	if d.HighRisk > 0 {
		out = append(out, Insight{
			Category: "retention",
			Priority: "high",
			Title:    "Re-engage high-risk volunteers",
			Message:  fmt.Sprintf("%d volunteer(s) are at high risk of dropping out. Reach out before the next event.", d.HighRisk),
			Metric:   float64(d.HighRisk),
		})
	}
	if d.MediumRisk > 0 {
		out = append(out, Insight{
			Category: "retention",
			Priority: "medium",
			Title:    "Follow up with medium-risk volunteers",
			Message:  fmt.Sprintf("%d volunteer(s) show declining participation.", d.MediumRisk),
			Metric:   float64(d.MediumRisk),
		})
	}
	if n := len(sat); n > 0 {
		latest := sat[n-1]
		switch {
		case latest.TotalEvaluations > 0 && latest.Score < 3.5:
			out = append(out, Insight{
				Category: "satisfaction",
				Priority: "high",
				Title:    "Improve the event experience",
				Message:  fmt.Sprintf("Average satisfaction for %s is %.2f out of 5.", latest.Label, latest.Score),
				Metric:   latest.Score,
			})
		case latest.Score >= 4.5:
			out = append(out, Insight{
				Category: "satisfaction",
				Priority: "low",
				Title:    "Sustain satisfaction",
				Message:  fmt.Sprintf("Volunteers rate %s at %.2f out of 5.", latest.Label, latest.Score),
				Metric:   latest.Score,
			})
		}
		if len(latest.TopIssues) > 0 {
			top := latest.TopIssues[0]
			out = append(out, Insight{
				Category: "feedback",
				Priority: "medium",
				Title:    fmt.Sprintf("Address recurring %s concerns", top.Issue),
				Message:  fmt.Sprintf("%q was mentioned %d time(s) in %s feedback.", top.Issue, top.Count, latest.Label),
				Metric:   float64(top.Count),
			})
		}
		if n > 1 && latest.Score < sat[n-2].Score-0.2 {
			out = append(out, Insight{
				Category: "satisfaction",
				Priority: "medium",
				Title:    "Satisfaction is declining",
				Message:  fmt.Sprintf("Satisfaction fell from %.2f in %s to %.2f in %s.", sat[n-2].Score, sat[n-2].Label, latest.Score, latest.Label),
				Metric:   domainAnalytics.Round2(latest.Score - sat[n-2].Score),
			})
		}
	}
	if s.TotalVolunteers > 0 && s.AverageAttendance < 70 {
		out = append(out, Insight{
			Category: "attendance",
			Priority: "high",
			Title:    "Improve attendance follow-up",
			Message:  fmt.Sprintf("Average attendance is %.2f%%. Send reminders before each event.", s.AverageAttendance),
			Metric:   s.AverageAttendance,
		})
	}
	if s.TotalEvents > 0 && s.SuccessRate < 50 {
		out = append(out, Insight{
			Category: "events",
			Priority: "medium",
			Title:    "Review event proposals",
			Message:  fmt.Sprintf("Only %.2f%% of proposed events were accepted.", s.SuccessRate),
			Metric:   s.SuccessRate,
		})
	}
	if len(out) == 0 {
		out = append(out, Insight{
			Category: "general",
			Priority: "low",
			Title:    "Metrics are healthy",
			Message:  "No concerns were detected in the current metrics.",
		})
	}
	rank := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Priority] < rank[out[j].Priority] })
	return out
}

func (u *Usecase) ParticipationSummary(ctx context.Context) (*ParticipationSummary, error) {
	return cached(ctx, u, "participation:summary", func() (*ParticipationSummary, error) {
		rows, derived, err := u.history(ctx, domainAnalytics.HistoryFilter{})
		if err != nil {
			return nil, err
		}
		out := &ParticipationSummary{
			TotalRecords: len(rows),
			Engagement:   map[string]int{},
			Consistency:  map[string]int{},
			BySemester:   []SemesterParticipation{},
			Derived:      derived,
		}
		emails := map[string]struct{}{}
		bySem := map[string]*SemesterParticipation{}
		semRates := map[string]float64{}
		var rateSum float64
		for _, h := range rows {
			emails[h.VolunteerEmail] = struct{}{}
			rateSum += h.AttendanceRate
			out.Engagement[string(h.EngagementLevel)]++
			out.Consistency[string(h.ParticipationConsistency)]++
			b, ok := bySem[h.Semester]
			if !ok {
				label := h.Semester
				if sem, err := domainAnalytics.ParseSemester(h.Semester); err == nil {
					label = sem.Label()
				}
				b = &SemesterParticipation{Semester: h.Semester, Label: label}
				bySem[h.Semester] = b
			}
			b.Volunteers++
			b.EventsJoined += h.EventsJoined
			b.EventsAttended += h.EventsAttended
			semRates[h.Semester] += h.AttendanceRate
		}
		out.TotalVolunteers = len(emails)
		out.AverageAttendance = mean(rateSum, len(rows))
		for key, b := range bySem {
			b.AverageAttendance = mean(semRates[key], b.Volunteers)
			out.BySemester = append(out.BySemester, *b)
		}
		sort.Slice(out.BySemester, func(i, j int) bool { return out.BySemester[i].Semester < out.BySemester[j].Semester })
		return out, nil
	})
}
