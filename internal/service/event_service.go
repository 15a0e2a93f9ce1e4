package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"

	"gorm.io/gorm"
)

type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: eventRepo}
}

type EventFilter struct {
	Type         model.EventType
	ClassID      uint
	UpcomingOnly bool
	Page         int
	Limit        int
}

func (s *EventService) List(filter EventFilter) ([]model.Event, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = util.DefaultPageLimit
	}
	return s.EventRepo.List(filter.Type, filter.ClassID, filter.UpcomingOnly, filter.Page, filter.Limit)
}

func (s *EventService) Get(id uint) (*model.Event, error) {
	event, err := s.EventRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrEventNotFound
	}
	return event, err
}

func (s *EventService) Create(event *model.Event) error {
	return s.EventRepo.Create(event)
}

func (s *EventService) Update(event *model.Event) error {
	return s.EventRepo.Update(event)
}

func (s *EventService) Cancel(id uint) error {
	event, err := s.Get(id)
	if err != nil {
		return err
	}
	event.Status = model.EventCancelled
	return s.EventRepo.Update(event)
}

// Book reserves a spot for a user. One active booking per user per
// event; a full event rejects further bookings.
func (s *EventService) Book(eventID, userID uint, booking *model.EventBooking) (*model.EventBooking, error) {
	event, err := s.Get(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventActive {
		return nil, util.ErrEventNotFound
	}

	if _, err := s.EventRepo.FindActiveBooking(eventID, userID); err == nil {
		return nil, util.ErrAlreadyBooked
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if event.MaxParticipants > 0 {
		count, err := s.EventRepo.CountActiveBookings(eventID)
		if err != nil {
			return nil, err
		}
		if count >= int64(event.MaxParticipants) {
			return nil, util.ErrEventFull
		}
	}

	booking.EventID = eventID
	booking.UserID = userID
	booking.Status = model.BookingPending
	if err := s.EventRepo.CreateBooking(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *EventService) CancelBooking(bookingID, userID uint, isStaff bool) error {
	booking, err := s.EventRepo.FindBookingByID(bookingID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if booking.UserID != userID && !isStaff {
		return util.ErrPermissionDenied
	}
	booking.Status = model.BookingCancelled
	return s.EventRepo.UpdateBooking(booking)
}

func (s *EventService) ConfirmBooking(bookingID uint) error {
	booking, err := s.EventRepo.FindBookingByID(bookingID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEventNotFound
	}
	if err != nil {
		return err
	}
	booking.Status = model.BookingConfirmed
	return s.EventRepo.UpdateBooking(booking)
}

func (s *EventService) Bookings(eventID uint) ([]model.EventBooking, error) {
	if _, err := s.Get(eventID); err != nil {
		return nil, err
	}
	return s.EventRepo.ListBookingsByEvent(eventID)
}

func (s *EventService) UserBookings(userID uint) ([]model.EventBooking, error) {
	return s.EventRepo.ListBookingsByUser(userID)
}
