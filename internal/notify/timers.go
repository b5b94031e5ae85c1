package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/study-planner/internal/store"
)

// reminderLogLimit bounds the persisted delivered-reminders log.
const reminderLogLimit = 50

// logWriteTimeout is the maximum time allowed for appending to the log.
const logWriteTimeout = 5 * time.Second

// ErrStopped is returned when a reminder is scheduled after Stop.
var ErrStopped = errors.New("reminder service stopped")

// ReminderRecord is one entry of the delivered-reminders log kept under
// its own storage key.
type ReminderRecord struct {
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// DeliveryMsg is a tea.Msg sent when a reminder fires.
type DeliveryMsg struct {
	Delivery Delivery
}

// Service is an in-process Notifier backed by one-shot timers. Timers do
// not survive a restart; the task repository re-schedules pending
// reminders at startup.
type Service struct {
	granted func() bool
	store   store.Store

	mu      sync.Mutex
	timers  map[Handle]*time.Timer
	stopped bool

	// logMu serializes the read-modify-write of the persisted log, which
	// runs on timer goroutines.
	logMu sync.Mutex

	deliveries chan Delivery
}

// NewService creates a timer-backed reminder service. granted reports the
// current notification permission (the settings toggle); store receives
// the delivered-reminders log and may be nil to disable logging.
func NewService(granted func() bool, s store.Store) *Service {
	return &Service{
		granted:    granted,
		store:      s,
		timers:     make(map[Handle]*time.Timer),
		deliveries: make(chan Delivery, 16),
	}
}

// RequestPermission reports whether reminders are currently allowed.
func (s *Service) RequestPermission(ctx context.Context) bool {
	return s.granted()
}

// ScheduleAt arms a one-shot timer firing after the given number of
// seconds and returns its handle. A stopped service arms nothing.
func (s *Service) ScheduleAt(seconds int64, payload Payload) (Handle, error) {
	handle := Handle(uuid.New().String())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return "", ErrStopped
	}

	s.timers[handle] = time.AfterFunc(time.Duration(seconds)*time.Second, func() {
		s.fire(handle, payload)
	})

	return handle, nil
}

// Cancel stops a pending reminder. Unknown or already-fired handles are
// a no-op.
func (s *Service) Cancel(handle Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[handle]; ok {
		t.Stop()
		delete(s.timers, handle)
	}
	return nil
}

// Stop cancels every pending timer. Further deliveries are suppressed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for h, t := range s.timers {
		t.Stop()
		delete(s.timers, h)
	}
}

// Pending returns the number of armed timers.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// fire delivers a reminder: it forgets the handle, emits the delivery on
// the channel, and appends to the persisted log.
func (s *Service) fire(handle Handle, payload Payload) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.timers, handle)
	s.mu.Unlock()

	d := Delivery{
		Handle:      handle,
		Payload:     payload,
		DeliveredAt: time.Now(),
	}

	select {
	case s.deliveries <- d:
	default:
		// Drop if channel is full to avoid blocking the timer goroutine
	}

	s.appendToLog(d)
}

// appendToLog records a delivery in the bounded reminders log. Failures
// are ignored: the log is informational only.
func (s *Service) appendToLog(d Delivery) {
	if s.store == nil {
		return
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()

	var records []ReminderRecord
	if raw, ok, err := s.store.Get(ctx, store.KeyReminderLog); err == nil && ok {
		_ = json.Unmarshal(raw, &records)
	}

	records = append(records, ReminderRecord{
		TaskID:      d.Payload.TaskID,
		Title:       d.Payload.Title,
		DeliveredAt: d.DeliveredAt,
	})
	if len(records) > reminderLogLimit {
		records = records[len(records)-reminderLogLimit:]
	}

	if raw, err := json.Marshal(records); err == nil {
		_ = s.store.Set(ctx, store.KeyReminderLog, raw)
	}
}

// RecentDeliveries returns the persisted delivered-reminders log, newest
// last. An absent log yields an empty slice.
func (s *Service) RecentDeliveries(ctx context.Context) ([]ReminderRecord, error) {
	if s.store == nil {
		return nil, nil
	}

	raw, ok, err := s.store.Get(ctx, store.KeyReminderLog)
	if err != nil || !ok {
		return nil, err
	}

	var records []ReminderRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// WaitForDelivery returns a tea.Cmd that waits for the next fired
// reminder. After processing a DeliveryMsg the caller should invoke it
// again to keep listening.
func (s *Service) WaitForDelivery() tea.Cmd {
	return func() tea.Msg {
		d, ok := <-s.deliveries
		if !ok {
			return nil
		}
		return DeliveryMsg{Delivery: d}
	}
}
