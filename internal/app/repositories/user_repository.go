package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hopebridge/eventhub/internal/app/models"
)

// UserRepository is the directory lookup for users referenced by
// registrations. Credential management happens elsewhere; this subsystem
// only resolves identity, display name, and phone contact.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []string{"id", "name", "email", "phone", "password_hash", "role", "created_at"}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.RoleType, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by id, or nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by email, or nil when absent
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// Create inserts a user if the email is free and returns the generated id;
// used by seeding only
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("name", "email", "phone", "password_hash", "role").
		Values(user.Name, user.Email, user.Phone, user.PasswordHash, user.RoleType).
		Suffix("ON CONFLICT (email) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Email already present; resolve the existing id
			existing, lookupErr := r.FindByEmail(ctx, user.Email)
			if lookupErr != nil {
				return 0, lookupErr
			}
			if existing == nil {
				return 0, fmt.Errorf("user %s not found after insert", user.Email)
			}
			return existing.ID, nil
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}
