package services

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeFetcher struct {
	candidates []ReminderCandidate
	err        error
	calls      int
}

func (f *fakeFetcher) FetchCandidates(reminderTime string) ([]ReminderCandidate, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeSender struct {
	sent    []string // recipient emails in send order
	failFor map[string]bool
}

func (f *fakeSender) SendReminderEmail(toEmail, subject, textBody, htmlBody string) error {
	if f.failFor[toEmail] {
		return fmt.Errorf("smtp rejected %s", toEmail)
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func newTestService(fetcher *fakeFetcher, sender *fakeSender) *ReminderService {
	return &ReminderService{
		fetcher: fetcher,
		sender:  sender,
		now:     func() time.Time { return testToday },
	}
}

func staleCandidate(email string) ReminderCandidate {
	return ReminderCandidate{
		Username:                email,
		Email:                   email,
		LatestJournalEntryDate:  daysAgo(testToday, 1),
		JournalRemindersEnabled: true,
	}
}

func TestRun_EmptyCandidateList(t *testing.T) {
	fetcher := &fakeFetcher{}
	sender := &fakeSender{}

	newTestService(fetcher, sender).Run("05:00:00")

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails for an empty slot, want 0", len(sender.sent))
	}
}

func TestRun_FetchFailureSendsNothing(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	sender := &fakeSender{}

	newTestService(fetcher, sender).Run("05:00:00")

	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails after a fetch failure, want 0", len(sender.sent))
	}
}

func TestRun_OneFailureDoesNotStopTheBatch(t *testing.T) {
	fetcher := &fakeFetcher{candidates: []ReminderCandidate{
		staleCandidate("first@example.com"),
		staleCandidate("second@example.com"),
		staleCandidate("third@example.com"),
	}}
	sender := &fakeSender{failFor: map[string]bool{"second@example.com": true}}

	newTestService(fetcher, sender).Run("05:00:00")

	want := []string{"first@example.com", "third@example.com"}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent to %v, want %v", sender.sent, want)
	}
	for i, email := range want {
		if sender.sent[i] != email {
			t.Errorf("sent[%d] = %s, want %s", i, sender.sent[i], email)
		}
	}
}

func TestRun_MissingEmailDoesNotStopTheBatch(t *testing.T) {
	broken := staleCandidate("")
	broken.Username = "no-email-user"

	fetcher := &fakeFetcher{candidates: []ReminderCandidate{
		staleCandidate("first@example.com"),
		broken,
		staleCandidate("third@example.com"),
	}}
	sender := &fakeSender{}

	newTestService(fetcher, sender).Run("05:00:00")

	if len(sender.sent) != 2 {
		t.Fatalf("sent to %v, want the two valid candidates", sender.sent)
	}
}

func TestRun_OptedOutCandidatesAreSkipped(t *testing.T) {
	optedOut := ReminderCandidate{
		Username: "quiet",
		Email:    "quiet@example.com",
		// stale on every front but no opt-ins
		LatestJournalEntryDate: daysAgo(testToday, 10),
	}
	fetcher := &fakeFetcher{candidates: []ReminderCandidate{optedOut}}
	sender := &fakeSender{}

	newTestService(fetcher, sender).Run("05:00:00")

	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails to an opted-out user, want 0", len(sender.sent))
	}
}

func TestProcessCandidate_SendsMatchingTemplate(t *testing.T) {
	type sentMail struct {
		to      string
		subject string
	}
	var got []sentMail
	recorder := senderFunc(func(toEmail, subject, textBody, htmlBody string) error {
		got = append(got, sentMail{to: toEmail, subject: subject})
		return nil
	})

	svc := &ReminderService{sender: recorder, now: func() time.Time { return testToday }}

	c := ReminderCandidate{
		Username:                 "ada",
		Email:                    "ada@example.com",
		ActivityRemindersEnabled: true,
	}
	kind, err := svc.processCandidate(testToday, c)
	if err != nil {
		t.Fatalf("processCandidate: %v", err)
	}
	if kind != NoActivityReminder {
		t.Fatalf("kind = %s, want %s", kind, NoActivityReminder)
	}

	tmpl, _ := TemplateFor(NoActivityReminder)
	if len(got) != 1 || got[0].to != "ada@example.com" || got[0].subject != tmpl.Subject {
		t.Errorf("sent %+v, want one email to ada@example.com with subject %q", got, tmpl.Subject)
	}
}

// senderFunc adapts a function to the ReminderSender interface
type senderFunc func(toEmail, subject, textBody, htmlBody string) error

func (f senderFunc) SendReminderEmail(toEmail, subject, textBody, htmlBody string) error {
	return f(toEmail, subject, textBody, htmlBody)
}
