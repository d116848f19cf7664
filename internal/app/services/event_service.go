package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
	"github.com/hopebridge/eventhub/internal/pkg/helpers"
)

// EventStore is the event persistence surface the service depends on
type EventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]*models.Event, error)
	GetUpcoming(ctx context.Context, since time.Time) ([]*models.Event, error)
	GetPast(ctx context.Context, before time.Time) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status models.EventStatus) error
	UpdateParticipants(ctx context.Context, id int64, participants int) error
	DeactivatePastEvents(ctx context.Context, before time.Time) (int64, error)
	GetGallery(ctx context.Context, eventID int64) ([]string, error)
	GetGalleriesByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]string, error)
	AppendGalleryImage(ctx context.Context, eventID int64, url string) error
	RemoveGalleryImage(ctx context.Context, eventID int64, url string) error
}

// RegistrationStore is the registration persistence surface the service
// depends on
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) (int64, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Registration, error)
	GetByEvent(ctx context.Context, eventID int64) ([]*models.Registration, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Registration, error)
	SumMembersByEvent(ctx context.Context, eventID int64) (int, error)
	SetReminder(ctx context.Context, registrationID int64, hoursBefore int) error
}

// DefaultReminderHours is the reminder lead time used when the registrant
// does not pick one.
const DefaultReminderHours = 24

// EventService defines the interface for event operations
type EventService interface {
	GetUpcomingEvents(ctx context.Context) ([]dto.EventResponse, error)
	GetPastEvents(ctx context.Context) ([]dto.EventResponse, error)
	GetAllEvents(ctx context.Context) ([]dto.EventResponse, error)
	GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	UpdateEventStatus(ctx context.Context, id int64, status models.EventStatus) error
	DeleteEvent(ctx context.Context, id int64) error
	JoinEvent(ctx context.Context, eventID, userID int64, members int) (*dto.EventResponse, error)
	SetReminder(ctx context.Context, eventID, userID int64, hoursBefore *int) error
	GetUserEvents(ctx context.Context, userID int64) ([]dto.UserEventResponse, error)
	GetEventRegistrations(ctx context.Context, eventID int64) ([]dto.RegistrantResponse, error)
	AddGalleryImage(ctx context.Context, eventID, userID int64, url string) error
	AddGalleryImageAdmin(ctx context.Context, eventID int64, url string) error
	RemoveGalleryImageAdmin(ctx context.Context, eventID int64, url string) error
	ReconcilePastEvents(ctx context.Context) (int64, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventStore        EventStore
	registrationStore RegistrationStore
	logger            zerolog.Logger
	now               func() time.Time

	// joinLocks serializes registration writes per event so the capacity
	// check and the insert happen atomically with respect to other joins
	// for the same event.
	joinLocksMu sync.Mutex
	joinLocks   map[int64]*sync.Mutex
}

// NewEventService creates a new EventService
func NewEventService(eventStore EventStore, registrationStore RegistrationStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventStore:        eventStore,
		registrationStore: registrationStore,
		logger:            logger,
		now:               time.Now,
		joinLocks:         make(map[int64]*sync.Mutex),
	}
}

func (s *eventServiceImpl) joinLock(eventID int64) *sync.Mutex {
	s.joinLocksMu.Lock()
	defer s.joinLocksMu.Unlock()
	mu, ok := s.joinLocks[eventID]
	if !ok {
		mu = &sync.Mutex{}
		s.joinLocks[eventID] = mu
	}
	return mu
}

// ReconcilePastEvents deactivates every active event whose date has passed.
// The update is idempotent; running it twice in a row changes nothing the
// second time.
func (s *eventServiceImpl) ReconcilePastEvents(ctx context.Context) (int64, error) {
	today := helpers.DayStart(s.now())
	updated, err := s.eventStore.DeactivatePastEvents(ctx, today)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.logger.Info().
			Int64("count", updated).
			Msg("Deactivated past events")
	}
	return updated, nil
}

// GetUpcomingEvents lists active events whose date has not passed. Listings
// reconcile the lifecycle first so a stale Active flag on a past event never
// leaks out.
func (s *eventServiceImpl) GetUpcomingEvents(ctx context.Context) ([]dto.EventResponse, error) {
	if _, err := s.ReconcilePastEvents(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reconcile past events before listing")
	}

	// Events dated today still count as upcoming, so the cutoff sits one
	// day behind the current day.
	since := helpers.DayStart(s.now()).AddDate(0, 0, -1)
	events, err := s.eventStore.GetUpcoming(ctx, since)
	if err != nil {
		return nil, err
	}
	return s.toEventResponses(ctx, events)
}

// GetPastEvents lists events whose date is strictly before today
func (s *eventServiceImpl) GetPastEvents(ctx context.Context) ([]dto.EventResponse, error) {
	if _, err := s.ReconcilePastEvents(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reconcile past events before listing")
	}

	events, err := s.eventStore.GetPast(ctx, helpers.DayStart(s.now()))
	if err != nil {
		return nil, err
	}
	return s.toEventResponses(ctx, events)
}

// GetAllEvents lists every event regardless of status
func (s *eventServiceImpl) GetAllEvents(ctx context.Context) ([]dto.EventResponse, error) {
	if _, err := s.ReconcilePastEvents(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reconcile past events before listing")
	}

	events, err := s.eventStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toEventResponses(ctx, events)
}

// GetEventByID retrieves a single event with its gallery
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	gallery, err := s.eventStore.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEventResponse(event, gallery)
	return &resp, nil
}

// CreateEvent creates a new event. Events dated in the past are created
// Inactive no matter what status the request asked for.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Invalid event date, expected YYYY-MM-DD")
	}

	status := models.EventStatusActive
	if req.Status != "" {
		status = models.EventStatus(req.Status)
	}

	event := &models.Event{
		Title:       req.Title,
		Location:    req.Location,
		Date:        date,
		Type:        req.Type,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Status:      status,
		Capacity:    req.Capacity,
	}
	if event.IsPast(s.now()) {
		event.Status = models.EventStatusInactive
	}

	id, err := s.eventStore.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id

	s.logger.Info().
		Int64("eventId", id).
		Str("title", event.Title).
		Msg("Event created")

	resp := toEventResponse(event, nil)
	return &resp, nil
}

// UpdateEvent replaces an event's details. The participant count is left
// alone; it tracks registrations, not edits.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Invalid event date, expected YYYY-MM-DD")
	}

	event.Title = req.Title
	event.Location = req.Location
	event.Date = date
	event.Type = req.Type
	event.ImageURL = req.ImageURL
	event.Description = req.Description
	event.Capacity = req.Capacity
	if req.Status != "" {
		event.Status = models.EventStatus(req.Status)
	}
	if event.IsPast(s.now()) {
		event.Status = models.EventStatusInactive
	}

	if err := s.eventStore.Update(ctx, event); err != nil {
		return nil, err
	}

	// The participant cache is recomputed from registrations on every
	// mutation rather than trusted across edits.
	total, err := s.registrationStore.SumMembersByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.eventStore.UpdateParticipants(ctx, id, total); err != nil {
		return nil, err
	}
	event.Participants = total

	gallery, err := s.eventStore.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEventResponse(event, gallery)
	return &resp, nil
}

// UpdateEventStatus toggles an event between Active and Inactive
func (s *eventServiceImpl) UpdateEventStatus(ctx context.Context, id int64, status models.EventStatus) error {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}
	return s.eventStore.UpdateStatus(ctx, id, status)
}

// DeleteEvent removes an event. Issued certificates are untouched.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id int64) error {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}

	if err := s.eventStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("eventId", id).
		Msg("Event deleted")
	return nil
}

// JoinEvent registers a user for an event with a member count. Member
// counts below one are treated as one. The capacity check counts members,
// not registrations, and holds under concurrent joins for the same event.
func (s *eventServiceImpl) JoinEvent(ctx context.Context, eventID, userID int64, members int) (*dto.EventResponse, error) {
	if members < 1 {
		members = 1
	}

	mu := s.joinLock(eventID)
	mu.Lock()
	defer mu.Unlock()

	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	if !event.IsActive() {
		return nil, apperrors.ErrEventNotJoinable
	}

	existing, err := s.registrationStore.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyRegistered
	}

	current, err := s.registrationStore.SumMembersByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Capacity > 0 && current+members > event.Capacity {
		return nil, apperrors.ErrCapacityExceeded
	}

	reg := &models.Registration{
		EventID: eventID,
		UserID:  userID,
		Members: members,
	}
	if _, err := s.registrationStore.Create(ctx, reg); err != nil {
		return nil, err
	}

	// Recompute the cached participant count from the registration set
	// rather than incrementing it.
	total, err := s.registrationStore.SumMembersByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.eventStore.UpdateParticipants(ctx, eventID, total); err != nil {
		return nil, err
	}
	event.Participants = total

	s.logger.Info().
		Int64("eventId", eventID).
		Int64("userId", userID).
		Int("members", members).
		Msg("User joined event")

	resp := toEventResponse(event, nil)
	return &resp, nil
}

// SetReminder sets the reminder lead time on the caller's registration.
// A nil lead time selects the default.
func (s *eventServiceImpl) SetReminder(ctx context.Context, eventID, userID int64, hoursBefore *int) error {
	reg, err := s.registrationStore.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return apperrors.ErrNotRegistered
	}

	hours := DefaultReminderHours
	if hoursBefore != nil {
		hours = *hoursBefore
	}
	return s.registrationStore.SetReminder(ctx, reg.ID, hours)
}

// GetUserEvents lists the events the user has joined, newest event first
func (s *eventServiceImpl) GetUserEvents(ctx context.Context, userID int64) ([]dto.UserEventResponse, error) {
	regs, err := s.registrationStore.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]int64, 0, len(regs))
	for _, reg := range regs {
		eventIDs = append(eventIDs, reg.EventID)
	}
	galleries, err := s.eventStore.GetGalleriesByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserEventResponse, 0, len(regs))
	for _, reg := range regs {
		if reg.Event == nil {
			continue
		}
		responses = append(responses, dto.UserEventResponse{
			EventID:       reg.EventID,
			Title:         reg.Event.Title,
			Date:          reg.Event.Date.Format(dto.DateLayout),
			Location:      reg.Event.Location,
			Members:       reg.Members,
			Status:        string(reg.Event.Status),
			ImageURL:      reg.Event.ImageURL,
			ReminderHours: reg.ReminderHours,
			Gallery:       toGalleryImages(galleries[reg.EventID]),
		})
	}
	return responses, nil
}

// GetEventRegistrations lists every registration for an event
func (s *eventServiceImpl) GetEventRegistrations(ctx context.Context, eventID int64) ([]dto.RegistrantResponse, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	regs, err := s.registrationStore.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RegistrantResponse, 0, len(regs))
	for _, reg := range regs {
		resp := dto.RegistrantResponse{
			ID:      reg.ID,
			UserID:  reg.UserID,
			Members: reg.Members,
		}
		if reg.User != nil {
			resp.UserName = reg.User.Name
			resp.UserEmail = reg.User.Email
			resp.Phone = reg.User.Phone
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// AddGalleryImage appends a gallery image on behalf of an attendee. Only
// registrants may contribute, and only once the event's date has passed.
func (s *eventServiceImpl) AddGalleryImage(ctx context.Context, eventID, userID int64, url string) error {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}
	if !event.IsPast(s.now()) {
		return apperrors.ErrNotYetPast
	}

	reg, err := s.registrationStore.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return apperrors.ErrNotAttendee
	}

	return s.eventStore.AppendGalleryImage(ctx, eventID, url)
}

// AddGalleryImageAdmin appends a gallery image without the attendee gate
func (s *eventServiceImpl) AddGalleryImageAdmin(ctx context.Context, eventID int64, url string) error {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}
	return s.eventStore.AppendGalleryImage(ctx, eventID, url)
}

// RemoveGalleryImageAdmin removes one occurrence of a gallery URL. Removing
// a URL that is not present is not an error.
func (s *eventServiceImpl) RemoveGalleryImageAdmin(ctx context.Context, eventID int64, url string) error {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}
	return s.eventStore.RemoveGalleryImage(ctx, eventID, url)
}

func (s *eventServiceImpl) toEventResponses(ctx context.Context, events []*models.Event) ([]dto.EventResponse, error) {
	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}
	galleries, err := s.eventStore.GetGalleriesByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(event, galleries[event.ID]))
	}
	return responses, nil
}

func toEventResponse(event *models.Event, gallery []string) dto.EventResponse {
	return dto.EventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Location:     event.Location,
		Date:         event.Date.Format(dto.DateLayout),
		Type:         event.Type,
		ImageURL:     event.ImageURL,
		Description:  event.Description,
		Status:       string(event.Status),
		Capacity:     event.Capacity,
		Participants: event.Participants,
		Gallery:      toGalleryImages(gallery),
	}
}

func toGalleryImages(urls []string) []dto.GalleryImage {
	images := make([]dto.GalleryImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, dto.GalleryImage{URL: url})
	}
	return images
}
