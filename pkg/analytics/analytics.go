// Package analytics derives safety metrics from point-in-time snapshots of
// alerts, assignments and employees. Nothing here touches storage.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const (
	trendWindowMonths = 6
	trendLabelLayout  = "Jan 2006"
	msPerHour         = 3_600_000.0
)

type Snapshot struct {
	Alerts      map[string]models.Alert
	Assignments map[string]models.Assignment
	Employees   map[string]models.Employee
	HelmetCount int
}

type Overview struct {
	TotalAlerts      int     `json:"totalAlerts"`
	ResolvedAlerts   int     `json:"resolvedAlerts"`
	UnresolvedAlerts int     `json:"unresolvedAlerts"`
	CriticalAlerts   int     `json:"criticalAlerts"`
	WarningAlerts    int     `json:"warningAlerts"`
	InfoAlerts       int     `json:"infoAlerts"`
	AvgResponseTime  string  `json:"avgResponseTime"`
	SafetyScore      int     `json:"safetyScore"`
	IncidentRate     float64 `json:"incidentRate"`
	MinersActive     int     `json:"minersActive"`
	TotalHelmets     int     `json:"totalHelmets"`
}

type TrendBucket struct {
	Month       string `json:"month"`
	Incidents   int    `json:"incidents"`
	Critical    int    `json:"critical"`
	SafetyScore int    `json:"safetyScore"`
}

type MinerPerformance struct {
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	HoursWorked    float64 `json:"hoursWorked"`
	TotalAlerts    int     `json:"alerts"`
	CriticalAlerts int     `json:"criticalAlerts"`
	SafetyScore    int     `json:"safetyScore"`
}

// SafetyScore is the rounded share of non-critical alerts, 100 when there are none.
func SafetyScore(total, critical int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(total-critical) / float64(total)))
}

// levelBucket maps the alert `type` onto critical, warning or info. Matching is
// exact; any other value, including other casings, counts as info.
func levelBucket(level models.AlertLevel) models.AlertLevel {
	switch level {
	case models.AlertLevelCritical, models.AlertLevelEmergency:
		return models.AlertLevelCritical
	case models.AlertLevelWarning:
		return models.AlertLevelWarning
	default:
		return models.AlertLevelInfo
	}
}

func isCriticalAlertType(t models.AlertType) bool {
	switch t {
	case models.AlertTypeCritical, models.AlertTypePanic:
		return true
	}
	return false
}

func activeHelmets(assignments map[string]models.Assignment) map[string]string {
	active := map[string]string{}
	for key, a := range assignments {
		if !a.IsActive() {
			continue
		}
		helmetID := a.HelmetID
		if helmetID == "" {
			helmetID = key
		}
		active[helmetID] = a.EmployeeID
	}
	return active
}

func ComputeOverview(s Snapshot) Overview {
	o := Overview{TotalHelmets: s.HelmetCount}

	var responseSum float64
	var responseCount int
	for _, a := range s.Alerts {
		o.TotalAlerts++
		if a.Resolved {
			o.ResolvedAlerts++
		}
		switch levelBucket(a.Type) {
		case models.AlertLevelCritical:
			o.CriticalAlerts++
		case models.AlertLevelWarning:
			o.WarningAlerts++
		default:
			o.InfoAlerts++
		}
		if a.Resolved && a.Timestamp > 0 && a.ResolvedAt > 0 {
			if d := a.ResolvedAt.Int64() - a.Timestamp.Int64(); d > 0 {
				responseSum += float64(d)
				responseCount++
			}
		}
	}
	o.UnresolvedAlerts = o.TotalAlerts - o.ResolvedAlerts

	o.AvgResponseTime = "N/A"
	if responseCount > 0 {
		o.AvgResponseTime = fmt.Sprintf("%.1f min", responseSum/float64(responseCount)/60)
	}

	o.SafetyScore = SafetyScore(o.TotalAlerts, o.CriticalAlerts)
	o.MinersActive = len(activeHelmets(s.Assignments))
	if o.TotalAlerts > 0 && o.MinersActive > 0 {
		o.IncidentRate = common.RoundTo(float64(o.TotalAlerts)/float64(o.MinersActive), 2)
	}
	return o
}

// monthsBefore steps back n calendar months, clamping the day to the end of the
// target month instead of overflowing into the next one.
func monthsBefore(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return first.AddDate(0, 0, day-1)
}

// ComputeSafetyTrends buckets the alerts of the trailing six months by calendar
// month in loc, oldest month first.
func ComputeSafetyTrends(alerts map[string]models.Alert, now time.Time, loc *time.Location) []TrendBucket {
	if loc == nil {
		loc = time.UTC
	}
	cutoff := monthsBefore(now.In(loc), trendWindowMonths)

	type bucket struct {
		order int
		TrendBucket
	}
	buckets := map[int]*bucket{}
	for _, a := range alerts {
		if a.Timestamp <= 0 {
			continue
		}
		at := time.Unix(a.Timestamp.Int64(), 0).In(loc)
		if at.Before(cutoff) {
			continue
		}
		order := at.Year()*12 + int(at.Month())
		b, ok := buckets[order]
		if !ok {
			b = &bucket{order: order, TrendBucket: TrendBucket{Month: at.Format(trendLabelLayout)}}
			buckets[order] = b
		}
		b.Incidents++
		if isCriticalAlertType(a.AlertType) {
			b.Critical++
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		b.SafetyScore = SafetyScore(b.Incidents, b.Critical)
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })

	return common.Mapper(ordered, func(b *bucket) TrendBucket { return b.TrendBucket })
}

func ComputeMinerPerformance(s Snapshot) []MinerPerformance {
	records := make(map[string]*MinerPerformance, len(s.Employees))
	for id, e := range s.Employees {
		if e.EmployeeID != "" {
			id = e.EmployeeID
		}
		name := e.DisplayName()
		if name == "" {
			name = "Unknown"
		}
		dept := e.Department
		if dept == "" {
			dept = "N/A"
		}
		records[id] = &MinerPerformance{EmployeeID: id, Name: name, Department: dept}
	}

	hours := map[string]float64{}
	for _, a := range s.Assignments {
		if a.ShiftStart <= 0 || a.ShiftEnd <= a.ShiftStart {
			continue
		}
		hours[a.EmployeeID] += float64(a.ShiftEnd.Int64()-a.ShiftStart.Int64()) / msPerHour
	}
	for id, h := range hours {
		if r, ok := records[id]; ok {
			r.HoursWorked = common.RoundTo(h, 1)
		}
	}

	active := activeHelmets(s.Assignments)
	for _, a := range s.Alerts {
		employeeID := a.EmployeeID
		if employeeID == "" {
			employeeID = active[a.HelmetID]
		}
		r, ok := records[employeeID]
		if !ok {
			continue
		}
		r.TotalAlerts++
		if levelBucket(a.Type) == models.AlertLevelCritical {
			r.CriticalAlerts++
		}
	}

	out := make([]MinerPerformance, 0, len(records))
	for _, r := range records {
		r.SafetyScore = SafetyScore(r.TotalAlerts, r.CriticalAlerts)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SafetyScore != out[j].SafetyScore {
			return out[i].SafetyScore > out[j].SafetyScore
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}
