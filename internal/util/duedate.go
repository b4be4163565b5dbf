package util

import "time"

// ClampToMonth returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func ClampToMonth(year int, month time.Month, targetDay int) time.Time {
	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// NextDueDate returns the next occurrence of a monthly due day on or after
// now. A due day beyond the length of the month lands on the month's last day.
func NextDueDate(dueDay int, now time.Time) time.Time {
	due := ClampToMonth(now.Year(), now.Month(), dueDay)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		year, month := now.Year(), now.Month()+1
		if month > time.December {
			year, month = year+1, time.January
		}
		due = ClampToMonth(year, month, dueDay)
	}
	return due
}
