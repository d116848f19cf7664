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

// CertificateRepository handles database operations for certificates
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// GetByNumber retrieves a certificate by its number, or nil when absent
func (r *CertificateRepository) GetByNumber(ctx context.Context, certNo string) (*models.Certificate, error) {
	query := squirrel.Select("id", "certificate_number", "user_name", "event_title", "issued_at", "event_id").
		From("certificates").
		Where("certificate_number = ?", certNo).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var cert models.Certificate
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&cert.ID, &cert.CertificateNumber, &cert.UserName, &cert.EventTitle, &cert.IssuedAt, &cert.EventID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &cert, nil
}

// CreateIfAbsent inserts a certificate unless its number already exists,
// then returns the stored record. Concurrent issuers for the same number
// all observe the first writer's row, issuance timestamp included.
func (r *CertificateRepository) CreateIfAbsent(ctx context.Context, cert *models.Certificate) (*models.Certificate, error) {
	query := squirrel.Insert("certificates").
		Columns("certificate_number", "user_name", "event_title", "issued_at", "event_id").
		Values(cert.CertificateNumber, cert.UserName, cert.EventTitle, cert.IssuedAt, cert.EventID).
		Suffix("ON CONFLICT (certificate_number) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	stored, err := r.GetByNumber(ctx, cert.CertificateNumber)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("certificate %s not found after insert", cert.CertificateNumber)
	}

	return stored, nil
}

// Create inserts a certificate and returns its generated id
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) (int64, error) {
	query := squirrel.Insert("certificates").
		Columns("certificate_number", "user_name", "event_title", "issued_at", "event_id").
		Values(cert.CertificateNumber, cert.UserName, cert.EventTitle, cert.IssuedAt, cert.EventID).
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

// Count returns the total number of issued certificates
func (r *CertificateRepository) Count(ctx context.Context) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("certificates").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
