package postgres

import (
	"context"

	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/repository"
	"booking/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingRepository implements the domain's BookingRepository interface.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateBooking persists a committed booking record.
func (repo *bookingRepository) CreateBooking(ctx context.Context, record *entity.BookingRecord) error {
	bookingM := fromBookingDomain(record)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "booking already recorded for this calendar event")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required booking fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking record")
	}

	// Update the entity with generated values
	record.CreatedAt = bookingM.CreatedAt

	return nil
}

// FindBookingByID retrieves a booking record by its unique ID.
func (repo *bookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.BookingRecord, error) {
	var bookingM model.BookingModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toBookingDomain(&bookingM), nil
}

// FindBookingByEventID retrieves a booking record by its calendar event reference.
func (repo *bookingRepository) FindBookingByEventID(ctx context.Context, eventID string) (*entity.BookingRecord, error) {
	var bookingM model.BookingModel

	err := repo.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&bookingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toBookingDomain(&bookingM), nil
}

// ListBookings returns booking records ordered by start time descending.
func (repo *bookingRepository) ListBookings(ctx context.Context, limit, offset int) ([]*entity.BookingRecord, error) {
	var bookingModels []*model.BookingModel

	err := repo.db.WithContext(ctx).
		Order("start_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	records := make([]*entity.BookingRecord, 0, len(bookingModels))
	for _, bookingM := range bookingModels {
		records = append(records, toBookingDomain(bookingM))
	}

	return records, nil
}

// --- Mapper Functions ---

// toBookingDomain converts a GORM BookingModel to a domain BookingRecord entity.
func toBookingDomain(data *model.BookingModel) *entity.BookingRecord {
	if data == nil {
		return nil
	}

	return &entity.BookingRecord{
		ID:        data.ID,
		EventID:   data.EventID,
		MeetLink:  data.MeetLink,
		HTMLLink:  data.HTMLLink,
		Start:     data.StartAt,
		End:       data.EndAt,
		Email:     data.Email,
		Name:      data.Name,
		Phone:     data.Phone,
		Topic:     data.Topic,
		CreatedAt: data.CreatedAt,
	}
}

// fromBookingDomain converts a domain BookingRecord entity to a GORM BookingModel.
func fromBookingDomain(data *entity.BookingRecord) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:        data.ID,
		EventID:   data.EventID,
		MeetLink:  data.MeetLink,
		HTMLLink:  data.HTMLLink,
		StartAt:   data.Start,
		EndAt:     data.End,
		Email:     data.Email,
		Name:      data.Name,
		Phone:     data.Phone,
		Topic:     data.Topic,
		CreatedAt: data.CreatedAt,
	}
}
