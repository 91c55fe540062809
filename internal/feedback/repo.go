package feedback

import (
	"context"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes feedback persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a feedback repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a report row.
func (r *Repository) Create(ctx context.Context, dto CreateFeedbackDTO) (*models.Feedback, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads a report by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var item models.Feedback
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAll returns every report, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus moves a report to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FeedbackStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes a report row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id).Error
}

// CountByStatus groups the inbox by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.FeedbackStatus]int64, error) {
	return countGrouped[enums.FeedbackStatus](ctx, r.db, "status")
}

// CountByType groups the inbox by report type.
func (r *Repository) CountByType(ctx context.Context) (map[enums.FeedbackType]int64, error) {
	return countGrouped[enums.FeedbackType](ctx, r.db, "type")
}

func countGrouped[K ~string](ctx context.Context, db *gorm.DB, column string) (map[K]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	if err := db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[K]int64, len(rows))
	for _, r := range rows {
		out[K(r.Key)] = r.Count
	}
	return out, nil
}
