package services

import (
	"testing"
	"time"
)

// helper: build a date pointer n days before today
func daysAgo(today time.Time, n int) *time.Time {
	d := today.AddDate(0, 0, -n)
	return &d
}

var testToday = time.Date(2025, time.March, 15, 18, 0, 0, 0, time.UTC)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC), time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC), 0},
		{"yesterday", time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 15, 0, 1, 0, 0, time.UTC), 1},
		{"a week ago", time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), 7},
		{"across month boundary", time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), 3},
	}

	for _, tt := range tests {
		got := daysBetween(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("%s: daysBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDayCountAtLeast(t *testing.T) {
	never := DayCount{Never: true}
	if !never.AtLeast(1) || !never.AtLeast(2) || !never.AtLeast(1000) {
		t.Error("never should satisfy any threshold")
	}

	one := DayCount{Days: 1}
	if !one.AtLeast(1) {
		t.Error("1 day should satisfy AtLeast(1)")
	}
	if one.AtLeast(2) {
		t.Error("1 day should not satisfy AtLeast(2)")
	}

	zero := DayCount{Days: 0}
	if zero.AtLeast(1) {
		t.Error("same-day entry should not satisfy AtLeast(1)")
	}
}

func TestClassifyRecency(t *testing.T) {
	tests := []struct {
		name        string
		journal     *time.Time
		habit       *time.Time
		wantAny     DayCount
		wantJournal DayCount
		wantHabit   DayCount
	}{
		{
			name:        "both absent means no activity ever",
			wantAny:     DayCount{Never: true},
			wantJournal: DayCount{Never: true},
			wantHabit:   DayCount{Never: true},
		},
		{
			name:        "present journal beats absent habit",
			journal:     daysAgo(testToday, 3),
			wantAny:     DayCount{Days: 3},
			wantJournal: DayCount{Days: 3},
			wantHabit:   DayCount{Never: true},
		},
		{
			name:        "present habit beats absent journal",
			habit:       daysAgo(testToday, 5),
			wantAny:     DayCount{Days: 5},
			wantJournal: DayCount{Never: true},
			wantHabit:   DayCount{Days: 5},
		},
		{
			name:        "more recent of the two wins",
			journal:     daysAgo(testToday, 4),
			habit:       daysAgo(testToday, 1),
			wantAny:     DayCount{Days: 1},
			wantJournal: DayCount{Days: 4},
			wantHabit:   DayCount{Days: 1},
		},
		{
			name:        "same-day entries count as zero days",
			journal:     daysAgo(testToday, 0),
			habit:       daysAgo(testToday, 0),
			wantAny:     DayCount{Days: 0},
			wantJournal: DayCount{Days: 0},
			wantHabit:   DayCount{Days: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ReminderCandidate{
				LatestJournalEntryDate: tt.journal,
				LatestHabitEntryDate:   tt.habit,
			}
			got := ClassifyRecency(testToday, c)
			if got.AnyActivity != tt.wantAny {
				t.Errorf("AnyActivity = %+v, want %+v", got.AnyActivity, tt.wantAny)
			}
			if got.Journal != tt.wantJournal {
				t.Errorf("Journal = %+v, want %+v", got.Journal, tt.wantJournal)
			}
			if got.HabitIntake != tt.wantHabit {
				t.Errorf("HabitIntake = %+v, want %+v", got.HabitIntake, tt.wantHabit)
			}
		})
	}
}

func TestSelectReminder(t *testing.T) {
	tests := []struct {
		name     string
		journal  *time.Time
		habit    *time.Time
		jEnabled bool
		hEnabled bool
		aEnabled bool
		want     ReminderKind
	}{
		{
			name: "all opt-ins off never sends",
			want: NoReminder,
		},
		{
			name:    "all opt-ins off ignores stale dates",
			journal: daysAgo(testToday, 10),
			habit:   daysAgo(testToday, 10),
			want:    NoReminder,
		},
		{
			name:     "no activity ever gets consolidated nudge",
			aEnabled: true,
			jEnabled: true,
			hEnabled: true,
			want:     NoActivityReminder,
		},
		{
			name:     "everything done today sends nothing",
			journal:  daysAgo(testToday, 0),
			habit:    daysAgo(testToday, 0),
			jEnabled: true,
			hEnabled: true,
			aEnabled: true,
			want:     NoReminder,
		},
		{
			name:     "inactivity rule preempts journal rule",
			journal:  daysAgo(testToday, 3),
			jEnabled: true,
			aEnabled: true,
			want:     NoActivityReminder,
		},
		{
			name:     "journal from yesterday, journal opt-in only",
			journal:  daysAgo(testToday, 1),
			jEnabled: true,
			want:     JournalOnlyReminder,
		},
		{
			name:     "habit intake from yesterday, habit opt-in only",
			habit:    daysAgo(testToday, 1),
			hEnabled: true,
			want:     HabitIntakeOnlyReminder,
		},
		{
			name:     "both forms from yesterday, both opt-ins",
			journal:  daysAgo(testToday, 1),
			habit:    daysAgo(testToday, 1),
			jEnabled: true,
			hEnabled: true,
			want:     BothFormsIncompleteReminder,
		},
		{
			name:     "one idle day is within the activity grace period",
			journal:  daysAgo(testToday, 1),
			habit:    daysAgo(testToday, 1),
			jEnabled: true,
			hEnabled: true,
			aEnabled: true,
			want:     BothFormsIncompleteReminder,
		},
		{
			name:     "two idle days exhaust the activity grace period",
			journal:  daysAgo(testToday, 2),
			habit:    daysAgo(testToday, 2),
			jEnabled: true,
			hEnabled: true,
			aEnabled: true,
			want:     NoActivityReminder,
		},
		{
			name:     "journal current but habit stale, both opt-ins",
			journal:  daysAgo(testToday, 0),
			habit:    daysAgo(testToday, 2),
			jEnabled: true,
			hEnabled: true,
			want:     HabitIntakeOnlyReminder,
		},
		{
			name:     "habit current but journal stale, both opt-ins",
			journal:  daysAgo(testToday, 2),
			habit:    daysAgo(testToday, 0),
			jEnabled: true,
			hEnabled: true,
			want:     JournalOnlyReminder,
		},
		{
			name:     "journal never written, journal opt-in only",
			habit:    daysAgo(testToday, 0),
			jEnabled: true,
			want:     JournalOnlyReminder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ReminderCandidate{
				LatestJournalEntryDate:   tt.journal,
				LatestHabitEntryDate:     tt.habit,
				JournalRemindersEnabled:  tt.jEnabled,
				HabitRemindersEnabled:    tt.hEnabled,
				ActivityRemindersEnabled: tt.aEnabled,
			}
			got := SelectReminder(ClassifyRecency(testToday, c), c)
			if got != tt.want {
				t.Errorf("SelectReminder = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTemplateForCoversEverySendableKind(t *testing.T) {
	for _, kind := range []ReminderKind{NoActivityReminder, BothFormsIncompleteReminder, JournalOnlyReminder, HabitIntakeOnlyReminder} {
		tmpl, ok := TemplateFor(kind)
		if !ok {
			t.Errorf("no template registered for %s", kind)
			continue
		}
		if tmpl.Subject == "" || tmpl.TextBody == "" || tmpl.HTMLBody == "" {
			t.Errorf("template for %s has empty fields", kind)
		}
	}

	if _, ok := TemplateFor(NoReminder); ok {
		t.Error("NoReminder should not have a template")
	}
}
