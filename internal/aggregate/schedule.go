package aggregate

import (
	"sort"
	"time"

	"github.com/noah-isme/journal-portal/internal/lesson"
	"github.com/noah-isme/journal-portal/internal/models"
)

const dayLayout = "2006-01-02"

var dayNames = [7]string{"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье"}

// WeekDay is one calendar day of a week view.
type WeekDay struct {
	Date      string                  `json:"date"`
	DayName   string                  `json:"dayName"`
	DayNumber int                     `json:"dayNumber"`
	Lessons   []models.LessonInstance `json:"lessons"`
}

// WeekStart returns midnight of the Monday of anchor's week in loc.
func WeekStart(anchor time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	anchor = anchor.In(loc)
	offset := (int(anchor.Weekday()) + 6) % 7
	y, m, d := anchor.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
}

// WeekEnd returns midnight of the Sunday of anchor's week in loc.
func WeekEnd(anchor time.Time, loc *time.Location) time.Time {
	return WeekStart(anchor, loc).AddDate(0, 0, 6)
}

// GroupByWeekday partitions lessons into the seven days of anchor's week. Lessons within
// a day are ordered by start time; lessons outside the week are left out.
func GroupByWeekday(anchor time.Time, lessons []models.LessonInstance, loc *time.Location) []WeekDay {
	start := WeekStart(anchor, loc)
	days := make([]WeekDay, 7)
	index := make(map[string]int, 7)
	for i := range days {
		date := start.AddDate(0, 0, i)
		key := date.Format(dayLayout)
		days[i] = WeekDay{Date: key, DayName: dayNames[i], DayNumber: date.Day(), Lessons: []models.LessonInstance{}}
		index[key] = i
	}
	for _, l := range lessons {
		if i, ok := index[lesson.DayKey(l.Date, start.Location())]; ok {
			days[i].Lessons = append(days[i].Lessons, l)
		}
	}
	for i := range days {
		SortByStartTime(days[i].Lessons)
	}
	return days
}

// SortByStartTime orders lessons by their zero-padded "HH:MM" start time.
func SortByStartTime(lessons []models.LessonInstance) {
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].StartTime < lessons[j].StartTime })
}
