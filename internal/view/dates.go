package view

import "time"

// DefaultDueSoonDays is the due-soon window when a filter leaves it unset.
const DefaultDueSoonDays = 7

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek is the most recent Monday midnight.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// dayOf puts deadline on now's calendar before truncating, so both sides of
// a comparison use the same location.
func dayOf(deadline time.Time, now time.Time) time.Time {
	return StartOfDay(deadline.In(now.Location()))
}

// IsOverdue reports a deadline on a day before today. Status is not
// considered here.
func IsOverdue(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	return dayOf(*deadline, now).Before(StartOfDay(now))
}

// IsDueSoon reports a deadline after today and before today+days.
func IsDueSoon(deadline *time.Time, now time.Time, days int) bool {
	if deadline == nil {
		return false
	}
	today := StartOfDay(now)
	d := dayOf(*deadline, now)
	return d.After(today) && d.Before(today.AddDate(0, 0, days))
}

type DeadlineStatus string

const (
	DeadlineNone    DeadlineStatus = "none"
	DeadlineOverdue DeadlineStatus = "overdue"
	DeadlineUrgent  DeadlineStatus = "urgent"
	DeadlineWarning DeadlineStatus = "warning"
	DeadlineOK      DeadlineStatus = "ok"
)

// DeadlineStatusOf buckets a deadline: overdue, under 3 days urgent, under
// 7 days warning, otherwise ok.
func DeadlineStatusOf(deadline *time.Time, now time.Time) DeadlineStatus {
	if deadline == nil {
		return DeadlineNone
	}
	today := StartOfDay(now)
	d := dayOf(*deadline, now)
	switch {
	case d.Before(today):
		return DeadlineOverdue
	case d.Before(today.AddDate(0, 0, 3)):
		return DeadlineUrgent
	case d.Before(today.AddDate(0, 0, 7)):
		return DeadlineWarning
	}
	return DeadlineOK
}
