package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitRequest is the payload for filing a report.
type SubmitRequest struct {
	Name    string             `json:"name" validate:"required"`
	Email   string             `json:"email" validate:"required,email"`
	Type    enums.FeedbackType `json:"type" validate:"required"`
	Subject string             `json:"subject" validate:"required"`
	Message string             `json:"message" validate:"required"`
}

// Service defines the behavior needed by the feedback controller.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*FeedbackDTO, error)
	ListAll(ctx context.Context) ([]FeedbackDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FeedbackDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FeedbackStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Statistics, error)
}

type feedbackRepository interface {
	Create(ctx context.Context, dto CreateFeedbackDTO) (*models.Feedback, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FeedbackStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[enums.FeedbackStatus]int64, error)
	CountByType(ctx context.Context) (map[enums.FeedbackType]int64, error)
}

type service struct {
	repo feedbackRepository
}

// NewService constructs a feedback service over the provided repository.
func NewService(repo feedbackRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feedback repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*FeedbackDTO, error) {
	if !req.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid feedback type")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	item, err := s.repo.Create(ctx, CreateFeedbackDTO{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Type:    req.Type,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feedback")
	}
	return FromModel(item), nil
}

func (s *service) ListAll(ctx context.Context) ([]FeedbackDTO, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}
	return FromModels(items), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*FeedbackDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup feedback")
	}
	return FromModel(item), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FeedbackStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid feedback status")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup feedback")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update feedback status")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup feedback")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete feedback")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*Statistics, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count by status")
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count by type")
	}
	var total int64
	for _, count := range byStatus {
		total += count
	}
	return &Statistics{Total: total, ByStatus: byStatus, ByType: byType}, nil
}
