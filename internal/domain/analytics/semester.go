package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Semester is a six-month bucket: 1 = Jan–Jun, 2 = Jul–Dec.
type Semester struct {
	Year   int `json:"year"`
	Number int `json:"semester"`
}

// SemesterOf buckets t by ceil(month/6) of its calendar year.
func SemesterOf(t time.Time) Semester {
	return Semester{Year: t.Year(), Number: (int(t.Month()) + 5) / 6}
}

// SemesterOfDate parses "YYYY-MM-DD" (or a longer RFC3339 string) and buckets it.
func SemesterOfDate(s string) (Semester, error) {
	if len(s) < len("2006-01-02") {
		return Semester{}, fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return Semester{}, err
	}
	return SemesterOf(t), nil
}

func ParseSemester(s string) (Semester, error) {
	y, n, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Semester{}, fmt.Errorf("invalid semester %q", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return Semester{}, fmt.Errorf("invalid semester %q", s)
	}
	num, err := strconv.Atoi(n)
	if err != nil || (num != 1 && num != 2) {
		return Semester{}, fmt.Errorf("invalid semester %q", s)
	}
	return Semester{Year: year, Number: num}, nil
}

func (s Semester) String() string { return fmt.Sprintf("%d-%d", s.Year, s.Number) }

func (s Semester) Before(o Semester) bool {
	if s.Year != o.Year {
		return s.Year < o.Year
	}
	return s.Number < o.Number
}

// Label renders the semester for charts, e.g. "1st Sem 2026".
func (s Semester) Label() string {
	if s.Number == 1 {
		return fmt.Sprintf("1st Sem %d", s.Year)
	}
	return fmt.Sprintf("2nd Sem %d", s.Year)
}
