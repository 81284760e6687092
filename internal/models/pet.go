package models

import "time"

// Species accepted for a pet.
const (
	SpeciesDog    = "Dog"
	SpeciesCat    = "Cat"
	SpeciesRabbit = "Rabbit"
	SpeciesBird   = "Bird"
	SpeciesOther  = "Other"
)

// Pet represents an animal owned by exactly one client.
type Pet struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID      int64     `json:"owner_id" gorm:"index;not null"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Species      string    `json:"species" gorm:"type:varchar(20);not null"`
	Breed        string    `json:"breed" gorm:"type:varchar(100);not null"`
	BirthDate    *string   `json:"birth_date,omitempty" gorm:"type:varchar(10)"` // YYYY-MM-DD
	Weight       *float64  `json:"weight,omitempty"`
	Color        *string   `json:"color,omitempty" gorm:"type:varchar(50)"`
	MedicalNotes *string   `json:"medical_notes,omitempty" gorm:"type:varchar(500)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Appointments []Appointment `json:"-" gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
}
