package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
)

// CertificateStore is the certificate persistence surface the service
// depends on
type CertificateStore interface {
	GetByNumber(ctx context.Context, certNo string) (*models.Certificate, error)
	CreateIfAbsent(ctx context.Context, cert *models.Certificate) (*models.Certificate, error)
	Create(ctx context.Context, cert *models.Certificate) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// UserStore is the user lookup surface the service depends on
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// CertificateService defines the interface for certificate operations
type CertificateService interface {
	IssueForAttendee(ctx context.Context, eventID, userID int64) (*models.Certificate, error)
	IssueAdHoc(ctx context.Context, req *dto.AdHocCertificateRequest) (*models.Certificate, error)
	FindByNumber(ctx context.Context, certNo string) (*models.Certificate, error)
}

// certificateServiceImpl implements CertificateService
type certificateServiceImpl struct {
	certStore         CertificateStore
	eventStore        EventStore
	registrationStore RegistrationStore
	userStore         UserStore
	prefix            string
	logger            zerolog.Logger
	now               func() time.Time

	// adHocMu serializes ad hoc issuance so two concurrent requests
	// cannot derive the same sequence number.
	adHocMu sync.Mutex
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certStore CertificateStore,
	eventStore EventStore,
	registrationStore RegistrationStore,
	userStore UserStore,
	prefix string,
	logger zerolog.Logger,
) CertificateService {
	return &certificateServiceImpl{
		certStore:         certStore,
		eventStore:        eventStore,
		registrationStore: registrationStore,
		userStore:         userStore,
		prefix:            prefix,
		logger:            logger,
		now:               time.Now,
	}
}

// IssueForAttendee issues the participation certificate for a registrant of
// an event. The certificate number is derived from the event and user, so
// repeated calls return the same certificate instead of minting a new one.
func (s *certificateServiceImpl) IssueForAttendee(ctx context.Context, eventID, userID int64) (*models.Certificate, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	reg, err := s.registrationStore.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.ErrNotRegistered
	}

	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	cert := &models.Certificate{
		CertificateNumber: fmt.Sprintf("%s-E%d-U%d", s.prefix, eventID, userID),
		UserName:          user.Name,
		EventTitle:        event.Title,
		IssuedAt:          s.now(),
		EventID:           eventID,
	}
	issued, err := s.certStore.CreateIfAbsent(ctx, cert)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("certificateNumber", issued.CertificateNumber).
		Int64("eventId", eventID).
		Int64("userId", userID).
		Msg("Attendee certificate issued")
	return issued, nil
}

// IssueAdHoc issues a certificate outside the registration flow. Numbers
// are sequential within the issuing year and never collide with attendee
// certificate numbers, which use a different shape.
func (s *certificateServiceImpl) IssueAdHoc(ctx context.Context, req *dto.AdHocCertificateRequest) (*models.Certificate, error) {
	event, err := s.eventStore.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	s.adHocMu.Lock()
	defer s.adHocMu.Unlock()

	count, err := s.certStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	cert := &models.Certificate{
		CertificateNumber: fmt.Sprintf("%s-%d-%04d", s.prefix, s.now().Year(), count+1),
		UserName:          req.UserName,
		EventTitle:        req.EventTitle,
		IssuedAt:          s.now(),
		EventID:           req.EventID,
	}
	id, err := s.certStore.Create(ctx, cert)
	if err != nil {
		return nil, err
	}
	cert.ID = id

	s.logger.Info().
		Str("certificateNumber", cert.CertificateNumber).
		Str("userName", cert.UserName).
		Msg("Ad hoc certificate issued")
	return cert, nil
}

// FindByNumber looks up a certificate by its public number
func (s *certificateServiceImpl) FindByNumber(ctx context.Context, certNo string) (*models.Certificate, error) {
	cert, err := s.certStore.GetByNumber(ctx, certNo)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, apperrors.ErrCertificateNotFound
	}
	return cert, nil
}
