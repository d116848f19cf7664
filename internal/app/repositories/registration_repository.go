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

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration and returns its generated id. The unique
// (event_id, user_id) constraint backs the one-registration-per-pair rule.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) (int64, error) {
	query := squirrel.Insert("event_registrations").
		Columns("event_id", "user_id", "members").
		Values(reg.EventID, reg.UserID, reg.Members).
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

// GetByEventAndUser retrieves the registration for a (event, user) pair,
// or nil when none exists
func (r *RegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Registration, error) {
	query := squirrel.Select("id", "event_id", "user_id", "members", "reminder_hours", "reminder_sent_at", "created_at").
		From("event_registrations").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var reg models.Registration
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.Members,
		&reg.ReminderHours, &reg.ReminderSentAt, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &reg, nil
}

// GetByEvent retrieves all registrations for an event with their users
func (r *RegistrationRepository) GetByEvent(ctx context.Context, eventID int64) ([]*models.Registration, error) {
	query := squirrel.Select(
		"r.id", "r.event_id", "r.user_id", "r.members", "r.reminder_hours", "r.reminder_sent_at", "r.created_at",
		"u.id", "u.name", "u.email", "u.phone",
	).
		From("event_registrations r").
		Join("users u ON u.id = r.user_id").
		Where("r.event_id = ?", eventID).
		OrderBy("r.created_at ASC").
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

	var regs []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var user models.User
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Members, &reg.ReminderHours, &reg.ReminderSentAt, &reg.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reg.User = &user
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}

// GetByUser retrieves all registrations of a user with their events
func (r *RegistrationRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Registration, error) {
	query := squirrel.Select(
		"r.id", "r.event_id", "r.user_id", "r.members", "r.reminder_hours", "r.reminder_sent_at", "r.created_at",
		"e.id", "e.title", "e.location", "e.date", "e.type", "e.image_url",
		"e.description", "e.status", "e.capacity", "e.participants", "e.created_at", "e.updated_at",
	).
		From("event_registrations r").
		Join("events e ON e.id = r.event_id").
		Where("r.user_id = ?", userID).
		OrderBy("e.date DESC").
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

	var regs []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var event models.Event
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Members, &reg.ReminderHours, &reg.ReminderSentAt, &reg.CreatedAt,
			&event.ID, &event.Title, &event.Location, &event.Date, &event.Type, &event.ImageURL,
			&event.Description, &event.Status, &event.Capacity, &event.Participants, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reg.Event = &event
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}

// SumMembersByEvent computes the member-count total across an event's
// registrations. This is the source of truth for the participant cache.
func (r *RegistrationRepository) SumMembersByEvent(ctx context.Context, eventID int64) (int, error) {
	query := squirrel.Select("COALESCE(SUM(members), 0)").
		From("event_registrations").
		Where("event_id = ?", eventID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return total, nil
}

// SetReminder stores the reminder lead time (hours) for a registration
func (r *RegistrationRepository) SetReminder(ctx context.Context, registrationID int64, hoursBefore int) error {
	query := squirrel.Update("event_registrations").
		Set("reminder_hours", hoursBefore).
		Where("id = ?", registrationID).
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

// MarkReminderSent records the one-shot delivery marker. Returns true when
// this call claimed the marker, false when another scan already had.
func (r *RegistrationRepository) MarkReminderSent(ctx context.Context, registrationID int64, sentAt time.Time) (bool, error) {
	query := squirrel.Update("event_registrations").
		Set("reminder_sent_at", sentAt).
		Where("id = ? AND reminder_sent_at IS NULL", registrationID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetPendingReminders retrieves registrations that opted into a reminder,
// have not been notified yet, and have a phone contact on file. Events and
// users come joined so the scan needs no further reads.
func (r *RegistrationRepository) GetPendingReminders(ctx context.Context) ([]*models.Registration, error) {
	query := squirrel.Select(
		"r.id", "r.event_id", "r.user_id", "r.members", "r.reminder_hours", "r.reminder_sent_at", "r.created_at",
		"e.id", "e.title", "e.location", "e.date", "e.type", "e.image_url",
		"e.description", "e.status", "e.capacity", "e.participants", "e.created_at", "e.updated_at",
		"u.id", "u.name", "u.email", "u.phone",
	).
		From("event_registrations r").
		Join("events e ON e.id = r.event_id").
		Join("users u ON u.id = r.user_id").
		Where("r.reminder_hours IS NOT NULL AND r.reminder_sent_at IS NULL AND u.phone <> ''").
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

	var regs []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var event models.Event
		var user models.User
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Members, &reg.ReminderHours, &reg.ReminderSentAt, &reg.CreatedAt,
			&event.ID, &event.Title, &event.Location, &event.Date, &event.Type, &event.ImageURL,
			&event.Description, &event.Status, &event.Capacity, &event.Participants, &event.CreatedAt, &event.UpdatedAt,
			&user.ID, &user.Name, &user.Email, &user.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reg.Event = &event
		reg.User = &user
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}
