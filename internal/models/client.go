package models

import "time"

// Client represents a registered pet owner.
type Client struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string    `json:"name" gorm:"type:varchar(100);not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone            string    `json:"phone" gorm:"type:varchar(15);not null"`
	Address          *string   `json:"address,omitempty" gorm:"type:varchar(200)"`
	EmergencyContact *string   `json:"emergency_contact,omitempty" gorm:"type:varchar(15)"`
	Password         string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`

	Pets         []Pet         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Appointments []Appointment `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
