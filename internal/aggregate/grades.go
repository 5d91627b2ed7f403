package aggregate

import (
	"sort"
	"time"

	"github.com/noah-isme/journal-portal/internal/models"
)

// GradeStats summarises a set of grades.
type GradeStats struct {
	Total   int                        `json:"total"`
	Average float64                    `json:"average"`
	Display float64                    `json:"averageDisplay"`
	Highest int                        `json:"highest"`
	Lowest  int                        `json:"lowest"`
	ByType  map[models.GradeType][]int `json:"byType"`
}

// SubjectGrades is the grades of one subject, most recent first.
type SubjectGrades struct {
	Subject models.Ref           `json:"subject"`
	Grades  []models.GradeRecord `json:"grades"`
	Stats   GradeStats           `json:"stats"`
}

// GradeOverview summarises grades across subjects.
type GradeOverview struct {
	Average  float64 `json:"average"`
	Display  float64 `json:"averageDisplay"`
	Count    int     `json:"count"`
	Highest  int     `json:"highest"`
	Subjects int     `json:"subjects"`
}

// SummariseGrades computes statistics over the full set of grades.
func SummariseGrades(grades []models.GradeRecord) GradeStats {
	stats := GradeStats{ByType: map[models.GradeType][]int{}}
	if len(grades) == 0 {
		return stats
	}
	values := make([]int, 0, len(grades))
	stats.Highest, stats.Lowest = grades[0].Value, grades[0].Value
	for _, g := range grades {
		values = append(values, g.Value)
		if g.Value > stats.Highest {
			stats.Highest = g.Value
		}
		if g.Value < stats.Lowest {
			stats.Lowest = g.Value
		}
		stats.ByType[g.GradeType] = append(stats.ByType[g.GradeType], g.Value)
	}
	stats.Total = len(grades)
	stats.Average = Average(values)
	stats.Display = Round1(stats.Average)
	return stats
}

// GroupGradesBySubject partitions grades by subject in order of first appearance.
func GroupGradesBySubject(grades []models.GradeRecord) []SubjectGrades {
	var groups []SubjectGrades
	index := map[string]int{}
	for _, g := range grades {
		key := g.Subject.ID()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, SubjectGrades{Subject: g.Subject})
		}
		if !groups[i].Subject.IsPopulated() && g.Subject.IsPopulated() {
			groups[i].Subject = g.Subject
		}
		groups[i].Grades = append(groups[i].Grades, g)
	}
	for i := range groups {
		groups[i].Stats = SummariseGrades(groups[i].Grades)
		SortGradesByDateDesc(groups[i].Grades)
	}
	return groups
}

// OverviewOf summarises grades across every subject.
func OverviewOf(grades []models.GradeRecord) GradeOverview {
	stats := SummariseGrades(grades)
	subjects := map[string]struct{}{}
	for _, g := range grades {
		subjects[g.Subject.ID()] = struct{}{}
	}
	return GradeOverview{
		Average:  stats.Average,
		Display:  stats.Display,
		Count:    stats.Total,
		Highest:  stats.Highest,
		Subjects: len(subjects),
	}
}

// SortGradesByDateDesc orders grades most recent first.
func SortGradesByDateDesc(grades []models.GradeRecord) {
	sort.SliceStable(grades, func(i, j int) bool {
		return parseDate(grades[i].Date).After(parseDate(grades[j].Date))
	})
}

func parseDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if t, err := time.Parse(dayLayout, raw); err == nil {
		return t
	}
	return time.Time{}
}
