package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// labelScores maps the rating labels used on the evaluation form to 1..5.
var labelScores = map[string]float64{
	"excellent":         5,
	"very satisfactory": 4,
	"satisfactory":      3,
	"fair":              2,
	"poor":              1,
}

var overallKeys = []string{"overall", "satisfaction", "rating"}

// Dimensions are the per-aspect ratings copied onto satisfaction surveys.
var Dimensions = []string{"organization", "communication", "venue", "materials", "support"}

// Criteria is a parsed evaluation criteria document. A nil Criteria is valid
// and yields no scores.
type Criteria map[string]any

// ParseCriteria never fails: malformed or non-object JSON gives nil.
func ParseCriteria(raw []byte) Criteria {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	// criteria is sometimes stored as a JSON string holding the object
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		raw = []byte(inner)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil
	}
	out := make(Criteria, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Value reads key as a number or a rating label.
func (c Criteria) Value(key string) (float64, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	return scoreOf(v)
}

// Overall returns the explicit overall score, else the mean of label-valued
// answers.
func (c Criteria) Overall() (float64, bool) {
	for _, k := range overallKeys {
		if v, ok := c.Value(k); ok {
			return v, true
		}
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sum float64
	var n int
	for _, k := range keys {
		s, ok := c[k].(string)
		if !ok {
			continue
		}
		if v, ok := labelScores[normalizeLabel(s)]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return Round2(sum / float64(n)), true
}

// Numeric answers of every key, for per-criterion averages.
func (c Criteria) Numeric() map[string]float64 {
	out := make(map[string]float64, len(c))
	for k, v := range c {
		if s, ok := scoreOf(v); ok {
			out[k] = s
		}
	}
	return out
}

// OverallScore resolves one evaluation to a satisfaction score: criteria
// first, then q13, then q14, else 0.
func OverallScore(criteria []byte, q13, q14 string) float64 {
	if v, ok := ParseCriteria(criteria).Overall(); ok {
		return v
	}
	if v, ok := ParseScore(q13); ok {
		return v
	}
	if v, ok := ParseScore(q14); ok {
		return v
	}
	return 0
}

// RespondentTypeOf derives who answered from which score fields were filled.
func RespondentTypeOf(q13, q14 string) RespondentType {
	hasVol := strings.TrimSpace(q13) != ""
	hasBen := strings.TrimSpace(q14) != ""
	switch {
	case hasVol && hasBen:
		return RespondentBoth
	case hasBen:
		return RespondentBeneficiary
	}
	return RespondentVolunteer
}

// ParseScore parses a numeric score string; labels are accepted too.
func ParseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	v, ok := labelScores[normalizeLabel(s)]
	return v, ok
}

func scoreOf(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		return ParseScore(t)
	}
	return 0, false
}

func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func Round2(f float64) float64 { return math.Round(f*100) / 100 }
