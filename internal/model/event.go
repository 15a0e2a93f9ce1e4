package model

import "time"

type EventType string

const (
	EventParentMeeting    EventType = "parent_meeting"
	EventClassCompetition EventType = "class_competition"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// swagger:model Event
type Event struct {
	BaseModel
	Title           string      `gorm:"size:200;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	Type            EventType   `gorm:"type:enum('parent_meeting','class_competition');not null" json:"type"`
	EventDate       time.Time   `gorm:"type:date;not null" json:"event_date"`
	StartTime       string      `gorm:"size:8;not null" json:"start_time"`
	EndTime         string      `gorm:"size:8;not null" json:"end_time"`
	Location        string      `gorm:"size:200" json:"location"`
	CreatedBy       uint        `gorm:"index;type:bigint unsigned;not null" json:"created_by"`
	MaxParticipants int         `gorm:"default:0" json:"max_participants"`
	Status          EventStatus `gorm:"type:enum('active','cancelled','completed');default:'active'" json:"status"`
	ClassID         *uint       `gorm:"index;type:bigint unsigned" json:"class_id"`
}

func (Event) TableName() string {
	return "events"
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// swagger:model EventBooking
type EventBooking struct {
	BaseModel
	EventID   uint          `gorm:"index;type:bigint unsigned;not null" json:"event_id"`
	UserID    uint          `gorm:"index;type:bigint unsigned;not null" json:"user_id"`
	StudentID *uint         `gorm:"type:bigint unsigned" json:"student_id"`
	TimeSlot  *time.Time    `json:"time_slot"`
	Status    BookingStatus `gorm:"type:enum('pending','confirmed','cancelled');default:'pending'" json:"status"`
	Notes     string        `gorm:"type:text" json:"notes"`
}

func (EventBooking) TableName() string {
	return "event_bookings"
}
