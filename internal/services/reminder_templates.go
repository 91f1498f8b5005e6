package services

// ReminderTemplate is a fixed subject/text/HTML triple for one reminder kind
type ReminderTemplate struct {
	Subject  string
	TextBody string
	HTMLBody string
}

var reminderTemplates = map[ReminderKind]ReminderTemplate{
	NoActivityReminder: {
		Subject:  "We miss you at Wellspring",
		TextBody: "It's been a couple of days since your last check-in. A few quiet minutes with your journal or habits can get you back on track.",
		HTMLBody: "<p>It's been a couple of days since your last check-in.</p><p>A few quiet minutes with your <strong>journal</strong> or <strong>habits</strong> can get you back on track.</p>",
	},
	BothFormsIncompleteReminder: {
		Subject:  "Your journal and habit check-in are waiting",
		TextBody: "You haven't written today's journal entry or logged your habits yet. Take a moment for both before the day ends.",
		HTMLBody: "<p>You haven't written today's <strong>journal entry</strong> or logged your <strong>habits</strong> yet.</p><p>Take a moment for both before the day ends.</p>",
	},
	JournalOnlyReminder: {
		Subject:  "Today's journal entry is waiting",
		TextBody: "You haven't written in your journal today. Even a few lines count.",
		HTMLBody: "<p>You haven't written in your <strong>journal</strong> today.</p><p>Even a few lines count.</p>",
	},
	HabitIntakeOnlyReminder: {
		Subject:  "Don't forget today's habit check-in",
		TextBody: "You haven't logged your habits today. Tick off what you've done so your streaks stay honest.",
		HTMLBody: "<p>You haven't logged your <strong>habits</strong> today.</p><p>Tick off what you've done so your streaks stay honest.</p>",
	},
}

// TemplateFor returns the template for a reminder kind. The second return
// is false for NoReminder and unknown kinds.
func TemplateFor(kind ReminderKind) (ReminderTemplate, bool) {
	tmpl, ok := reminderTemplates[kind]
	return tmpl, ok
}
