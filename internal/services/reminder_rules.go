package services

import "time"

// ReminderKind identifies which reminder email, if any, a user should receive.
type ReminderKind int

const (
	NoReminder ReminderKind = iota
	NoActivityReminder
	BothFormsIncompleteReminder
	JournalOnlyReminder
	HabitIntakeOnlyReminder
)

func (k ReminderKind) String() string {
	switch k {
	case NoActivityReminder:
		return "no_activity"
	case BothFormsIncompleteReminder:
		return "both_forms_incomplete"
	case JournalOnlyReminder:
		return "journal_only"
	case HabitIntakeOnlyReminder:
		return "habit_intake_only"
	default:
		return "none"
	}
}

// DayCount is a number of whole calendar days since an event. Never marks a
// user with no recorded event at all; it compares as further in the past
// than any numeric count.
type DayCount struct {
	Days  int
	Never bool
}

// AtLeast reports whether the event is at least n days in the past
func (d DayCount) AtLeast(n int) bool {
	return d.Never || d.Days >= n
}

// daysSince converts an optional entry date into a DayCount relative to today
func daysSince(today time.Time, date *time.Time) DayCount {
	if date == nil {
		return DayCount{Never: true}
	}
	return DayCount{Days: daysBetween(*date, today)}
}

// daysBetween returns the calendar-date difference to - from. Time of day is
// ignored: an entry from earlier today is 0 days ago.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// Recency captures how long ago a user last engaged with each form
type Recency struct {
	AnyActivity DayCount
	Journal     DayCount
	HabitIntake DayCount
}

// ClassifyRecency computes the day counts for one candidate. The invocation
// date is a parameter rather than an ambient clock read so the function
// stays pure and testable.
func ClassifyRecency(today time.Time, c ReminderCandidate) Recency {
	r := Recency{
		Journal:     daysSince(today, c.LatestJournalEntryDate),
		HabitIntake: daysSince(today, c.LatestHabitEntryDate),
	}

	// AnyActivity is the more recent of the two; a present date always
	// beats an absent one, and two absent dates mean no activity ever.
	switch {
	case r.Journal.Never:
		r.AnyActivity = r.HabitIntake
	case r.HabitIntake.Never:
		r.AnyActivity = r.Journal
	case r.HabitIntake.Days < r.Journal.Days:
		r.AnyActivity = r.HabitIntake
	default:
		r.AnyActivity = r.Journal
	}

	return r
}

// SelectReminder picks at most one reminder for a candidate. Rules are
// ordered and the first match wins: two or more idle days (or no activity
// ever) collapse into a single consolidated nudge before any form-specific
// one is considered. A form counts as incomplete as soon as it wasn't
// filled in today, while overall inactivity gets a one-day grace period.
func SelectReminder(r Recency, c ReminderCandidate) ReminderKind {
	switch {
	case c.ActivityRemindersEnabled && r.AnyActivity.AtLeast(2):
		return NoActivityReminder
	case c.JournalRemindersEnabled && c.HabitRemindersEnabled &&
		r.Journal.AtLeast(1) && r.HabitIntake.AtLeast(1):
		return BothFormsIncompleteReminder
	case c.JournalRemindersEnabled && r.Journal.AtLeast(1):
		return JournalOnlyReminder
	case c.HabitRemindersEnabled && r.HabitIntake.AtLeast(1):
		return HabitIntakeOnlyReminder
	default:
		return NoReminder
	}
}
