package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hopebridge/eventhub/internal/app/models"
)

// eventColumns is the canonical select list for event rows.
var eventColumns = []string{
	"id", "title", "location", "date", "type", "image_url",
	"description", "status", "capacity", "participants",
	"created_at", "updated_at",
}

// EventRepository handles database operations for events and their galleries
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Location, &e.Date, &e.Type, &e.ImageURL,
		&e.Description, &e.Status, &e.Capacity, &e.Participants,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and returns its generated id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("title", "location", "date", "type", "image_url", "description", "status", "capacity", "participants").
		Values(event.Title, event.Location, event.Date, event.Type, event.ImageURL, event.Description, event.Status, event.Capacity, event.Participants).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a single event, or nil when it does not exist
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return event, nil
}

// GetAll retrieves every event ordered by date descending
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		OrderBy("date DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// GetUpcoming retrieves active events whose date is on or after the given
// day, soonest first. Today's events still count as upcoming.
func (r *EventRepository) GetUpcoming(ctx context.Context, since time.Time) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("date >= ? AND status = ?", since, models.EventStatusActive).
		OrderBy("date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// GetPast retrieves events strictly before the given day, most recent first
func (r *EventRepository) GetPast(ctx context.Context, before time.Time) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("date < ?", before).
		OrderBy("date DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

func (r *EventRepository) queryEvents(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Update replaces the mutable fields of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := squirrel.Update("events").
		Set("title", event.Title).
		Set("location", event.Location).
		Set("date", event.Date).
		Set("type", event.Type).
		Set("image_url", event.ImageURL).
		Set("description", event.Description).
		Set("status", event.Status).
		Set("capacity", event.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", event.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes an event; registrations and gallery rows cascade
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// UpdateStatus sets an event's status
func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status models.EventStatus) error {
	query := squirrel.Update("events").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// UpdateParticipants persists the recomputed participant count
func (r *EventRepository) UpdateParticipants(ctx context.Context, id int64, participants int) error {
	query := squirrel.Update("events").
		Set("participants", participants).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// DeactivatePastEvents flips every active event dated strictly before the
// given day to inactive, in one statement. Running it again is a no-op.
func (r *EventRepository) DeactivatePastEvents(ctx context.Context, before time.Time) (int64, error) {
	query := squirrel.Update("events").
		Set("status", models.EventStatusInactive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("date < ? AND status = ?", before, models.EventStatusActive).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}

// GetGallery retrieves an event's gallery URLs in append order
func (r *EventRepository) GetGallery(ctx context.Context, eventID int64) ([]string, error) {
	query := squirrel.Select("url").
		From("event_gallery").
		Where("event_id = ?", eventID).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// GetGalleriesByEventIDs retrieves gallery URLs for multiple events at once
func (r *EventRepository) GetGalleriesByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]string, error) {
	if len(eventIDs) == 0 {
		return make(map[int64][]string), nil
	}

	query := squirrel.Select("event_id", "url").
		From("event_gallery").
		Where(squirrel.Eq{"event_id": eventIDs}).
		OrderBy("event_id ASC", "position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	galleries := make(map[int64][]string)
	for rows.Next() {
		var eventID int64
		var url string
		if err := rows.Scan(&eventID, &url); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		galleries[eventID] = append(galleries[eventID], url)
	}

	return galleries, rows.Err()
}

// AppendGalleryImage appends a URL to the event's gallery. Duplicates are
// permitted; position preserves append order.
func (r *EventRepository) AppendGalleryImage(ctx context.Context, eventID int64, url string) error {
	query := squirrel.Insert("event_gallery").
		Columns("event_id", "position", "url").
		Values(eventID, squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM event_gallery WHERE event_id = ?)", eventID), url).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveGalleryImage removes the first occurrence of a URL from the
// event's gallery. Removing an absent URL is not an error.
func (r *EventRepository) RemoveGalleryImage(ctx context.Context, eventID int64, url string) error {
	sql := `DELETE FROM event_gallery
	WHERE id = (
		SELECT id FROM event_gallery
		WHERE event_id = $1 AND url = $2
		ORDER BY position ASC
		LIMIT 1
	)`

	if _, err := r.db.Exec(ctx, sql, eventID, url); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
