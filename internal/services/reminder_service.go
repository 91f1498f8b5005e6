package services

import (
	"fmt"
	"log"
	"time"
	"wellspring/internal/database"

	"gorm.io/gorm"
)

// ReminderCandidate is one row of the hourly eligibility scan: a user whose
// stored reminder time matches the requested slot, together with the dates
// of their most recent journal and habit-intake entries. It is a read
// snapshot; nothing in the reminder pass mutates it.
type ReminderCandidate struct {
	Username                 string     `gorm:"column:username"`
	Email                    string     `gorm:"column:email"`
	LatestJournalEntryDate   *time.Time `gorm:"column:latest_journal_entry_date"`
	LatestHabitEntryDate     *time.Time `gorm:"column:latest_habit_entry_date"`
	JournalRemindersEnabled  bool       `gorm:"column:journal_reminders_enabled"`
	HabitRemindersEnabled    bool       `gorm:"column:habit_reminders_enabled"`
	ActivityRemindersEnabled bool       `gorm:"column:activity_reminders_enabled"`
}

// CandidateFetcher returns the users eligible for a reminder at the given
// "HH:00:00" slot.
type CandidateFetcher interface {
	FetchCandidates(reminderTime string) ([]ReminderCandidate, error)
}

// ReminderSender delivers a single reminder email
type ReminderSender interface {
	SendReminderEmail(toEmail, subject, textBody, htmlBody string) error
}

// ReminderService runs the hourly reminder batch
type ReminderService struct {
	fetcher CandidateFetcher
	sender  ReminderSender
	now     func() time.Time
}

func NewReminderService() *ReminderService {
	return &ReminderService{
		fetcher: &dbCandidateFetcher{db: database.GetDB()},
		sender:  NewEmailService(),
		now:     time.Now,
	}
}

// Run executes one reminder pass for the given "HH:00:00" slot. A fetch
// failure or an empty slot ends the run quietly, and a failure for one
// candidate never stops the remaining ones.
func (s *ReminderService) Run(reminderTime string) {
	candidates, err := s.fetcher.FetchCandidates(reminderTime)
	if err != nil {
		log.Printf("Reminder run %s: failed to fetch candidates: %v", reminderTime, err)
		return
	}
	if len(candidates) == 0 {
		log.Printf("Reminder run %s: no candidates", reminderTime)
		return
	}

	today := s.now().UTC()
	sent := 0
	for _, candidate := range candidates {
		kind, err := s.processCandidate(today, candidate)
		if err != nil {
			log.Printf("Reminder run %s: user %s: %v", reminderTime, candidate.Username, err)
			continue
		}
		if kind != NoReminder {
			sent++
		}
	}

	log.Printf("Reminder run %s: %d candidates, %d emails sent", reminderTime, len(candidates), sent)
}

// processCandidate classifies one candidate and sends at most one email
func (s *ReminderService) processCandidate(today time.Time, c ReminderCandidate) (ReminderKind, error) {
	recency := ClassifyRecency(today, c)
	kind := SelectReminder(recency, c)
	if kind == NoReminder {
		return NoReminder, nil
	}

	tmpl, ok := TemplateFor(kind)
	if !ok {
		return NoReminder, fmt.Errorf("no template for reminder kind %s", kind)
	}
	if c.Email == "" {
		return NoReminder, fmt.Errorf("candidate has no email address")
	}

	if err := s.sender.SendReminderEmail(c.Email, tmpl.Subject, tmpl.TextBody, tmpl.HTMLBody); err != nil {
		return NoReminder, fmt.Errorf("failed to send %s reminder: %w", kind, err)
	}

	return kind, nil
}

// dbCandidateFetcher runs the aggregate eligibility query against Postgres
type dbCandidateFetcher struct {
	db *gorm.DB
}

func (f *dbCandidateFetcher) FetchCandidates(reminderTime string) ([]ReminderCandidate, error) {
	var candidates []ReminderCandidate
	err := f.db.Raw(`
		SELECT a.username,
		       a.email,
		       a.journal_reminders_enabled,
		       a.habit_reminders_enabled,
		       a.activity_reminders_enabled,
		       j.latest_journal_entry_date,
		       h.latest_habit_entry_date
		FROM account a
		LEFT JOIN (
			SELECT username, MAX(entry_date) AS latest_journal_entry_date
			FROM journal_entry
			GROUP BY username
		) j ON j.username = a.username
		LEFT JOIN (
			SELECT username, MAX(entry_date) AS latest_habit_entry_date
			FROM habit_entry
			GROUP BY username
		) h ON h.username = a.username
		WHERE a.reminder_time = ?
		  AND a.deleted_at IS NULL
		  AND (a.journal_reminders_enabled OR a.habit_reminders_enabled OR a.activity_reminders_enabled)`,
		reminderTime).Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	return candidates, nil
}
