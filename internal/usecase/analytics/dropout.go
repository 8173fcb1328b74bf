package analytics

import (
	"context"
	"sort"
	"strings"

	domainAnalytics "vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/decision"
	"vms-backend/internal/domain/membership"
)

const dayMillis = int64(24 * 60 * 60 * 1000)

// DropoutRisk scores every known volunteer, including approved members who
// never joined an event, and summarizes participation per semester.
func (u *Usecase) DropoutRisk(ctx context.Context) (*DropoutReport, error) {
	return cached(ctx, u, "dropout", func() (*DropoutReport, error) {
		rows, _, err := u.history(ctx, domainAnalytics.HistoryFilter{})
		if err != nil {
			return nil, err
		}
		active := true
		members, err := u.uow.Repos().Memberships.List(ctx, membership.Filter{Status: decision.Approved, Active: &active})
		if err != nil {
			return nil, err
		}
		return buildDropout(rows, members, u.now().UnixMilli()), nil
	})
}

func buildDropout(rows []domainAnalytics.ParticipationHistory, members []membership.Membership, now int64) *DropoutReport {
	type acc struct {
		risk      VolunteerRisk
		rateSum   float64
		semesters map[string]struct{}
		rows      int
	}
	vols := map[string]*acc{}
	semesters := map[string]*SemesterDropout{}
	semRates := map[string]float64{}

	for _, h := range rows {
		v, ok := vols[h.VolunteerEmail]
		if !ok {
			v = &acc{
				risk:      VolunteerRisk{Email: h.VolunteerEmail, Name: h.VolunteerName, MembershipID: h.MembershipID},
				semesters: map[string]struct{}{},
			}
			vols[h.VolunteerEmail] = v
		}
		v.rows++
		v.rateSum += h.AttendanceRate
		v.risk.EventsJoined += h.EventsJoined
		v.risk.EventsAttended += h.EventsAttended
		v.semesters[h.Semester] = struct{}{}
		if h.LastEventDate != nil && (v.risk.LastEventDate == nil || *h.LastEventDate > *v.risk.LastEventDate) {
			last := *h.LastEventDate
			v.risk.LastEventDate = &last
			v.risk.Name = h.VolunteerName
		}
		if v.risk.MembershipID == nil {
			v.risk.MembershipID = h.MembershipID
		}

		s, ok := semesters[h.Semester]
		if !ok {
			label := h.Semester
			if sem, err := domainAnalytics.ParseSemester(h.Semester); err == nil {
				label = sem.Label()
			}
			s = &SemesterDropout{Semester: h.Semester, Label: label}
			semesters[h.Semester] = s
		}
		s.TotalVolunteers++
		switch h.EngagementLevel {
		case domainAnalytics.EngagementActive, domainAnalytics.EngagementModerate:
			s.ActiveVolunteers++
		default:
			s.AtRiskVolunteers++
		}
		s.EventsJoined += h.EventsJoined
		s.EventsAttended += h.EventsAttended
		s.EventsDropped += h.EventsDropped
		semRates[h.Semester] += h.AttendanceRate
	}

	for _, m := range members {
		email := strings.ToLower(strings.TrimSpace(m.Email))
		if _, ok := vols[email]; ok || email == "" {
			continue
		}
		id := m.ID
		vols[email] = &acc{risk: VolunteerRisk{Email: email, Name: m.Fullname, MembershipID: &id}}
	}

	out := &DropoutReport{SemesterData: []SemesterDropout{}, AtRiskVolunteers: []VolunteerRisk{}}
	for _, v := range vols {
		r := v.risk
		r.AttendanceRate = mean(v.rateSum, v.rows)
		r.SemestersActive = len(v.semesters)
		in := domainAnalytics.RiskInput{
			AttendanceRate:  r.AttendanceRate,
			Joined:          r.EventsJoined,
			Attended:        r.EventsAttended,
			SemestersActive: r.SemestersActive,
		}
		if r.LastEventDate != nil {
			days := int((now - *r.LastEventDate) / dayMillis)
			if days < 0 {
				days = 0
			}
			r.DaysSinceLastEvent = &days
			in.DaysSinceLast, in.HasLastEvent = days, true
		}
		r.RiskScore, r.Reasons = domainAnalytics.RiskScore(in)
		if r.Reasons == nil {
			r.Reasons = []string{}
		}
		r.RiskLevel = domainAnalytics.RiskLevelOf(r.RiskScore)
		switch r.RiskLevel {
		case domainAnalytics.RiskHigh:
			out.HighRisk++
		case domainAnalytics.RiskMedium:
			out.MediumRisk++
		default:
			out.LowRisk++
		}
		if r.RiskScore >= domainAnalytics.AtRiskThreshold {
			out.AtRiskVolunteers = append(out.AtRiskVolunteers, r)
		}
	}
	out.TotalVolunteers = len(vols)
	sort.Slice(out.AtRiskVolunteers, func(i, j int) bool {
		a, b := out.AtRiskVolunteers[i], out.AtRiskVolunteers[j]
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		return a.Email < b.Email
	})

	for key, s := range semesters {
		s.AverageAttendance = mean(semRates[key], s.TotalVolunteers)
		if s.EventsJoined > 0 {
			s.DropoutRate = domainAnalytics.Round2(100 * float64(s.EventsDropped) / float64(s.EventsJoined))
		}
		out.SemesterData = append(out.SemesterData, *s)
	}
	sort.Slice(out.SemesterData, func(i, j int) bool {
		return out.SemesterData[i].Semester < out.SemesterData[j].Semester
	})
	return out
}
