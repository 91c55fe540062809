package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitRequest is the payload from the public contact form.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required"`
}

// MessageDTO is the transport shape for a stored message.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Service accepts contact form submissions. The inbox is write-only from the
// public API.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*MessageDTO, error)
}

// Repository persists contact messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contact repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact message row.
func (r *Repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

type messageStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type service struct {
	repo messageStore
}

// NewService constructs a contact service over the provided repository.
func NewService(repo messageStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*MessageDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	msg := &models.ContactMessage{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact message")
	}
	return &MessageDTO{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}, nil
}
