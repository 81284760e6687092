package models

// Preference is a single persisted key-value session flag.
type Preference struct {
	Key   string `gorm:"primaryKey;column:pref_key;type:varchar(100)"`
	Value string `gorm:"type:varchar(255);not null"`
}
