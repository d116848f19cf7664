package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hopebridge/eventhub/internal/app/models"
)

type fakeEventStore struct {
	mu        sync.Mutex
	nextID    int64
	events    map[int64]*models.Event
	galleries map[int64][]string
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:    make(map[int64]*models.Event),
		galleries: make(map[int64][]string),
	}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *event
	stored.ID = f.nextID
	f.events[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) GetAll(_ context.Context) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Event, 0, len(f.events))
	for _, event := range f.events {
		copied := *event
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventStore) GetUpcoming(_ context.Context, since time.Time) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Event
	for _, event := range f.events {
		if !event.Date.Before(since) && event.Status == models.EventStatusActive {
			copied := *event
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeEventStore) GetPast(_ context.Context, before time.Time) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Event
	for _, event := range f.events {
		if event.Date.Before(before) {
			copied := *event
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) UpdateStatus(_ context.Context, id int64, status models.EventStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event, ok := f.events[id]; ok {
		event.Status = status
	}
	return nil
}

func (f *fakeEventStore) UpdateParticipants(_ context.Context, id int64, participants int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event, ok := f.events[id]; ok {
		event.Participants = participants
	}
	return nil
}

func (f *fakeEventStore) DeactivatePastEvents(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	for _, event := range f.events {
		if event.Date.Before(before) && event.Status == models.EventStatusActive {
			event.Status = models.EventStatusInactive
			updated++
		}
	}
	return updated, nil
}

func (f *fakeEventStore) GetGallery(_ context.Context, eventID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.galleries[eventID]...), nil
}

func (f *fakeEventStore) GetGalleriesByEventIDs(_ context.Context, eventIDs []int64) (map[int64][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64][]string)
	for _, id := range eventIDs {
		if urls, ok := f.galleries[id]; ok {
			out[id] = append([]string(nil), urls...)
		}
	}
	return out, nil
}

func (f *fakeEventStore) AppendGalleryImage(_ context.Context, eventID int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.galleries[eventID] = append(f.galleries[eventID], url)
	return nil
}

func (f *fakeEventStore) RemoveGalleryImage(_ context.Context, eventID int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := f.galleries[eventID]
	for i, u := range urls {
		if u == url {
			f.galleries[eventID] = append(urls[:i], urls[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeRegistrationStore struct {
	mu     sync.Mutex
	nextID int64
	regs   []*models.Registration
	events *fakeEventStore
	users  map[int64]*models.User
}

func newFakeRegistrationStore(events *fakeEventStore) *fakeRegistrationStore {
	return &fakeRegistrationStore{
		events: events,
		users:  make(map[int64]*models.User),
	}
}

func (f *fakeRegistrationStore) Create(_ context.Context, reg *models.Registration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *reg
	stored.ID = f.nextID
	f.regs = append(f.regs, &stored)
	return stored.ID, nil
}

func (f *fakeRegistrationStore) GetByEventAndUser(_ context.Context, eventID, userID int64) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationStore) GetByEvent(_ context.Context, eventID int64) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			copied := *reg
			if user, ok := f.users[reg.UserID]; ok {
				u := *user
				copied.User = &u
			}
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) GetByUser(_ context.Context, userID int64) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for _, reg := range f.regs {
		if reg.UserID == userID {
			copied := *reg
			if event, ok := f.events.events[reg.EventID]; ok {
				e := *event
				copied.Event = &e
			}
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRegistrationStore) SumMembersByEvent(_ context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			total += reg.Members
		}
	}
	return total, nil
}

func (f *fakeRegistrationStore) SetReminder(_ context.Context, registrationID int64, hoursBefore int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.ID == registrationID {
			hours := hoursBefore
			reg.ReminderHours = &hours
			return nil
		}
	}
	return nil
}

func (f *fakeRegistrationStore) MarkReminderSent(_ context.Context, registrationID int64, sentAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.ID == registrationID {
			if reg.ReminderSentAt != nil {
				return false, nil
			}
			at := sentAt
			reg.ReminderSentAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationStore) GetPendingReminders(_ context.Context) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for _, reg := range f.regs {
		if reg.ReminderHours == nil || reg.ReminderSentAt != nil {
			continue
		}
		user, ok := f.users[reg.UserID]
		if !ok || user.Phone == "" {
			continue
		}
		copied := *reg
		u := *user
		copied.User = &u
		if event, ok := f.events.events[reg.EventID]; ok {
			e := *event
			copied.Event = &e
		}
		out = append(out, &copied)
	}
	return out, nil
}

type fakeCertificateStore struct {
	mu     sync.Mutex
	nextID int64
	certs  map[string]*models.Certificate
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{certs: make(map[string]*models.Certificate)}
}

func (f *fakeCertificateStore) GetByNumber(_ context.Context, certNo string) (*models.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cert, ok := f.certs[certNo]
	if !ok {
		return nil, nil
	}
	copied := *cert
	return &copied, nil
}

func (f *fakeCertificateStore) CreateIfAbsent(_ context.Context, cert *models.Certificate) (*models.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.certs[cert.CertificateNumber]; ok {
		copied := *existing
		return &copied, nil
	}
	f.nextID++
	stored := *cert
	stored.ID = f.nextID
	f.certs[stored.CertificateNumber] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeCertificateStore) Create(_ context.Context, cert *models.Certificate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *cert
	stored.ID = f.nextID
	f.certs[stored.CertificateNumber] = &stored
	return stored.ID, nil
}

func (f *fakeCertificateStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.certs)), nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type sentMessage struct {
	to   string
	text string
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMessage
	err    error
	failTo string
}

func (f *fakeSender) Send(_ context.Context, to string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.failTo != "" && to == f.failTo {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, sentMessage{to: to, text: text})
	return nil
}
