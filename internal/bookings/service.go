package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/db/models"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateBookingRequest is the payload for recording a reservation.
type CreateBookingRequest struct {
	UserID          uuid.UUID       `json:"user_id" validate:"required"`
	RoomID          uuid.UUID       `json:"room_id" validate:"required"`
	GuestName       string          `json:"guest_name" validate:"required"`
	GuestEmail      string          `json:"guest_email" validate:"required,email"`
	GuestPhone      string          `json:"guest_phone,omitempty"`
	CheckInDate     time.Time       `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time       `json:"check_out_date" validate:"required"`
	NumGuests       int             `json:"num_guests,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	SpecialRequests string          `json:"special_requests,omitempty"`
}

// BookingLists groups a user's bookings into the two display buckets.
type BookingLists struct {
	Active    []BookingDTO `json:"active"`
	Completed []BookingDTO `json:"completed"`
}

// Service defines the behavior needed by the bookings controller.
type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error)
	ListByUserPartitioned(ctx context.Context, userID uuid.UUID) (*BookingLists, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
}

type bookingRepository interface {
	Create(ctx context.Context, dto CreateBookingDTO) (*models.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
}

type service struct {
	repo    bookingRepository
	metrics *metrics.ReservationMetrics
}

// ServiceParams bundles the dependencies required to build a bookings service.
type ServiceParams struct {
	Repo    bookingRepository
	Metrics *metrics.ReservationMetrics
}

// NewService constructs a bookings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	return &service{repo: params.Repo, metrics: params.Metrics}, nil
}

// Create records a reservation. Dates are only sanity-checked for ordering;
// overlapping stays in the same room are accepted.
func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	if req.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}
	if req.RoomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room_id is required")
	}
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest_name is required")
	}
	if !req.CheckOutDate.After(req.CheckInDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check_out_date must be after check_in_date")
	}

	booking, err := s.repo.Create(ctx, CreateBookingDTO{
		UserID:          req.UserID,
		RoomID:          req.RoomID,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		GuestPhone:      req.GuestPhone,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		NumGuests:       req.NumGuests,
		TotalPrice:      req.TotalPrice,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create booking")
	}
	s.metrics.IncBookingCreated()
	return FromModel(booking), nil
}

// ListByUser returns the user's bookings, newest first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bookings")
	}
	return FromModels(items), nil
}

// ListByUserPartitioned splits the user's bookings into the active bucket
// (anything not yet completed, soonest check-in first) and the completed
// bucket (newest first).
func (s *service) ListByUserPartitioned(ctx context.Context, userID uuid.UUID) (*BookingLists, error) {
	items, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, completed := Partition(items)
	return &BookingLists{Active: active, Completed: completed}, nil
}

// Partition splits bookings into active and completed buckets. Active keeps
// every status except completed and sorts by check-in ascending; completed
// sorts by created_at descending.
func Partition(items []BookingDTO) (active, completed []BookingDTO) {
	active = make([]BookingDTO, 0, len(items))
	completed = make([]BookingDTO, 0)
	for _, b := range items {
		if b.Status == enums.BookingStatusCompleted {
			completed = append(completed, b)
		} else {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CheckInDate.Before(active[j].CheckInDate)
	})
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})
	return active, completed
}

// UpdateStatus moves a booking to the given status.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid booking status")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Booking not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup booking")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update booking status")
	}
	return nil
}
