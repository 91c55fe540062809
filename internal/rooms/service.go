package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddRoomRequest is the payload for adding a catalog room.
type AddRoomRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Amenities   string          `json:"amenities,omitempty"`
	IsAvailable *bool           `json:"is_available,omitempty"`
}

// UpdateRoomRequest carries the mutable room fields.
type UpdateRoomRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Amenities   *string          `json:"amenities,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

// Service defines the behavior needed by the rooms controller.
type Service interface {
	ListAll(ctx context.Context) ([]RoomDTO, error)
	Search(ctx context.Context, term string) ([]RoomDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomDTO, error)
	Add(ctx context.Context, req AddRoomRequest) (*RoomDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LogBooking(ctx context.Context, roomID uuid.UUID) error
}

type roomRepository interface {
	Create(ctx context.Context, dto CreateRoomDTO) (*models.Room, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListAll(ctx context.Context) ([]models.Room, error)
	Search(ctx context.Context, term string) ([]models.Room, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateRoomDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
	LogBooking(ctx context.Context, roomID uuid.UUID, roomName string) error
}

type service struct {
	repo roomRepository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build a rooms service.
type ServiceParams struct {
	Repo   roomRepository
	Logger *logger.Logger
}

// NewService constructs a rooms service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("room repository is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) ListAll(ctx context.Context) ([]RoomDTO, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rooms")
	}
	return FromModels(items), nil
}

func (s *service) Search(ctx context.Context, term string) ([]RoomDTO, error) {
	if strings.TrimSpace(term) == "" {
		return s.ListAll(ctx)
	}
	items, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search rooms")
	}
	return FromModels(items), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup room")
	}
	return FromModel(room), nil
}

func (s *service) Add(ctx context.Context, req AddRoomRequest) (*RoomDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	room, err := s.repo.Create(ctx, CreateRoomDTO{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Amenities:   req.Amenities,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create room")
	}
	return FromModel(room), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup room")
	}
	if err := s.repo.Update(ctx, id, UpdateRoomDTO{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Amenities:   req.Amenities,
		IsAvailable: req.IsAvailable,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update room")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup room")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete room")
	}
	return nil
}

// LogBooking writes a booking-attempt audit row. The write is best-effort:
// a failure is logged and the caller proceeds.
func (s *service) LogBooking(ctx context.Context, roomID uuid.UUID) error {
	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Room not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup room")
	}
	if err := s.repo.LogBooking(ctx, room.ID, room.Name); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "recording booking attempt", err)
		}
	}
	return nil
}
