// Package reminder sends day-before SMS reminders for confirmed table bookings.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/restrohub/api/internal/database"
	"github.com/robfig/cron/v3"
)

// Store is the subset of database queries the reminder job needs.
type Store interface {
	ListDueReminders(ctx context.Context, date pgtype.Date) ([]database.ListDueRemindersRow, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Recorder counts reminder outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	ReminderSent(ok bool)
}

type Service struct {
	store    Store
	sender   Sender
	recorder Recorder
	loc      *time.Location
	cron     *cron.Cron
}

func NewService(store Store, sender Sender, recorder Recorder, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:    store,
		sender:   sender,
		recorder: recorder,
		loc:      loc,
		cron:     cron.New(cron.WithLocation(loc)),
	}
}

// Start schedules the daily run. spec is a standard five-field cron expression.
func (s *Service) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.SendDueReminders(ctx, time.Now()); err != nil {
			log.Printf("ERROR: booking reminders: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	s.cron.Start()
	log.Printf("Reminder scheduler started (%s)", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}

// SendDueReminders notifies customers of confirmed bookings dated the day
// after now (in the restaurant time zone) and stamps each one as reminded.
// It returns the number of reminders delivered. Individual delivery
// failures are logged and left unstamped so a later run retries them.
func (s *Service) SendDueReminders(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.loc)
	tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, time.UTC)

	due, err := s.store.ListDueReminders(ctx, pgtype.Date{Time: tomorrow, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	sent := 0
	for _, b := range due {
		if !b.CustomerPhone.Valid || b.CustomerPhone.String == "" {
			log.Printf("Booking %s: customer %q has no phone, skipping reminder", b.ID, b.CustomerName)
			continue
		}

		if err := s.sender.Send(ctx, b.CustomerPhone.String, Message(b)); err != nil {
			log.Printf("ERROR: send reminder for booking %s: %v", b.ID, err)
			s.record(false)
			continue
		}
		if err := s.store.MarkReminderSent(ctx, b.ID); err != nil {
			log.Printf("ERROR: mark reminder sent for booking %s: %v", b.ID, err)
		}
		s.record(true)
		sent++
	}
	return sent, nil
}

func (s *Service) record(ok bool) {
	if s.recorder != nil {
		s.recorder.ReminderSent(ok)
	}
}

// Message renders the reminder text for a booking.
func Message(b database.ListDueRemindersRow) string {
	guests := "guests"
	if b.Guests == 1 {
		guests = "guest"
	}
	return fmt.Sprintf("Hi %s, this is a reminder of your table at %s on %s at %s for %d %s.",
		b.CustomerName, b.RestaurantName, b.Date.Time.Format("Mon 02 Jan"), b.Time, b.Guests, guests)
}
