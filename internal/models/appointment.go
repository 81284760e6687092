package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a clinic visit booked for one of the owner's pets.
type Appointment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID   int64     `json:"owner_id" gorm:"index;not null"`
	PetID     int64     `json:"pet_id" gorm:"index;not null"`
	Date      string    `json:"date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Time      string    `json:"time" gorm:"type:varchar(5);not null"`  // HH:MM
	Service   string    `json:"service" gorm:"type:varchar(50);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null"` // e.g., "pending", "confirmed", "completed", "cancelled"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
