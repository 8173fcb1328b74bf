package analytics

import (
	"sort"
	"strings"
)

const (
	// AtRiskThreshold is the risk score from which a volunteer is flagged.
	AtRiskThreshold = 50
	maxRisk         = 100
)

type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// AttendanceRate is 100·attended/joined rounded to two decimals, 0 when joined is 0.
func AttendanceRate(attended, joined int) float64 {
	if joined <= 0 {
		return 0
	}
	return Round2(100 * float64(attended) / float64(joined))
}

func EngagementOf(attended int, rate float64) EngagementLevel {
	switch {
	case attended == 0:
		return EngagementInactive
	case rate >= 80:
		return EngagementActive
	case rate >= 50:
		return EngagementModerate
	}
	return EngagementAtRisk
}

func ConsistencyOf(attended int, rate float64) Consistency {
	switch {
	case attended == 0:
		return ConsistencyNone
	case rate >= 80:
		return ConsistencyRegular
	case rate >= 50:
		return ConsistencyIrregular
	}
	return ConsistencyLow
}

type RiskInput struct {
	AttendanceRate  float64
	Joined          int
	Attended        int
	DaysSinceLast   int
	HasLastEvent    bool
	SemestersActive int
}

// RiskScore scores dropout risk in [0, 100] and lists the contributing reasons.
func RiskScore(in RiskInput) (int, []string) {
	score := 0
	var reasons []string
	if in.Joined == 0 && in.Attended == 0 {
		score += 50
		reasons = append(reasons, "No event participation")
	} else {
		switch {
		case in.AttendanceRate < 50:
			score += 40
			reasons = append(reasons, "Attendance rate below 50%")
		case in.AttendanceRate < 70:
			score += 25
			reasons = append(reasons, "Attendance rate below 70%")
		case in.AttendanceRate < 85:
			score += 10
			reasons = append(reasons, "Attendance rate below 85%")
		}
		switch {
		case in.Attended == 0 && in.Joined > 0:
			score += 50
			reasons = append(reasons, "Joined events but never attended")
		case in.Attended < 2:
			score += 10
			reasons = append(reasons, "Attended fewer than 2 events")
		}
	}
	if in.HasLastEvent {
		switch {
		case in.DaysSinceLast > 90:
			score += 40
			reasons = append(reasons, "Inactive for more than 90 days")
		case in.DaysSinceLast > 60:
			score += 25
			reasons = append(reasons, "Inactive for more than 60 days")
		case in.DaysSinceLast > 30:
			score += 15
			reasons = append(reasons, "Inactive for more than 30 days")
		}
	}
	switch in.SemestersActive {
	case 0:
		score += 20
		reasons = append(reasons, "No active semester")
	case 1:
		score += 10
		reasons = append(reasons, "Active for a single semester")
	}
	if score > maxRisk {
		score = maxRisk
	}
	return score, reasons
}

func RiskLevelOf(score int) RiskLevel {
	switch {
	case score >= 75:
		return RiskHigh
	case score >= 50:
		return RiskMedium
	}
	return RiskLow
}

// IssueKeywords are the recurring complaint topics searched in comments.
var IssueKeywords = []string{"communication", "schedule", "materials", "support", "venue", "time"}

type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// TopIssues counts case-insensitive keyword occurrences across comments,
// most frequent first; keywords that never occur are omitted.
func TopIssues(comments []string) []IssueCount {
	counts := make(map[string]int, len(IssueKeywords))
	for _, c := range comments {
		lc := strings.ToLower(c)
		for _, k := range IssueKeywords {
			counts[k] += strings.Count(lc, k)
		}
	}
	out := make([]IssueCount, 0, len(IssueKeywords))
	for _, k := range IssueKeywords {
		if counts[k] > 0 {
			out = append(out, IssueCount{Issue: k, Count: counts[k]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
