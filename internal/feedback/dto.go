package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
)

// FeedbackDTO is the transport shape for a visitor report.
type FeedbackDTO struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Type      enums.FeedbackType   `json:"type"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    enums.FeedbackStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateFeedbackDTO holds the data required to persist a report.
type CreateFeedbackDTO struct {
	Name    string
	Email   string
	Type    enums.FeedbackType
	Subject string
	Message string
}

// Statistics summarizes the feedback inbox for the admin dashboard.
type Statistics struct {
	Total    int64                          `json:"total"`
	ByStatus map[enums.FeedbackStatus]int64 `json:"by_status"`
	ByType   map[enums.FeedbackType]int64   `json:"by_type"`
}

func FromModel(f *models.Feedback) *FeedbackDTO {
	if f == nil {
		return nil
	}
	return &FeedbackDTO{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Type:      f.Type,
		Subject:   f.Subject,
		Message:   f.Message,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func FromModels(items []models.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}

func (c CreateFeedbackDTO) ToModel() *models.Feedback {
	return &models.Feedback{
		ID:      uuid.New(),
		Name:    c.Name,
		Email:   c.Email,
		Type:    c.Type,
		Subject: c.Subject,
		Message: c.Message,
		Status:  enums.FeedbackStatusNew,
	}
}
