package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	CertificateRepository  *CertificateRepository
	UserRepository         *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		EventRepository:        NewEventRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		CertificateRepository:  NewCertificateRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
