package repository

import (
	"seangkatan_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.DB.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Update(event *model.Event) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Event{}, id).Error
}

func (r *EventRepository) List(eventType model.EventType, classID uint, upcomingOnly bool, page, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	query := r.DB.Model(&model.Event{})
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}
	if classID != 0 {
		query = query.Where("class_id = ?", classID)
	}
	if upcomingOnly {
		today := time.Now().Format("2006-01-02")
		query = query.Where("event_date >= ? AND status = ?", today, model.EventActive)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("event_date ASC, start_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	return events, total, err
}

func (r *EventRepository) CreateBooking(booking *model.EventBooking) error {
	return r.DB.Create(booking).Error
}

func (r *EventRepository) FindBookingByID(id uint) (*model.EventBooking, error) {
	var booking model.EventBooking
	if err := r.DB.First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindActiveBooking returns the user's non-cancelled booking for an event.
func (r *EventRepository) FindActiveBooking(eventID, userID uint) (*model.EventBooking, error) {
	var booking model.EventBooking
	err := r.DB.Where("event_id = ? AND user_id = ? AND status <> ?", eventID, userID, model.BookingCancelled).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *EventRepository) UpdateBooking(booking *model.EventBooking) error {
	return r.DB.Save(booking).Error
}

func (r *EventRepository) CountActiveBookings(eventID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.EventBooking{}).
		Where("event_id = ? AND status <> ?", eventID, model.BookingCancelled).
		Count(&count).Error
	return count, err
}

func (r *EventRepository) ListBookingsByEvent(eventID uint) ([]model.EventBooking, error) {
	var bookings []model.EventBooking
	err := r.DB.Where("event_id = ?", eventID).Order("created_at ASC").Find(&bookings).Error
	return bookings, err
}

func (r *EventRepository) ListBookingsByUser(userID uint) ([]model.EventBooking, error) {
	var bookings []model.EventBooking
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}
