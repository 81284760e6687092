package controller

import "vethome/internal/models"

// LoadStatus is the lifecycle of a list projection.
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusLoaded  LoadStatus = "loaded"
	StatusError   LoadStatus = "error"
)

// SessionStatus is the lifecycle of the session projection.
type SessionStatus string

const (
	SessionAnonymous      SessionStatus = "anonymous"
	SessionAuthenticating SessionStatus = "authenticating"
	SessionAuthenticated  SessionStatus = "authenticated"
)

// ClientSummary is the logged-in client as shown on the home screen.
type ClientSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PetsCount int    `json:"petsCount"`
}

type LoginForm struct {
	Email         string         `json:"email"`
	Pass          string         `json:"-"`
	EmailError    string         `json:"emailError,omitempty"`
	PassError     string         `json:"passError,omitempty"`
	IsSubmitting  bool           `json:"isSubmitting"`
	CanSubmit     bool           `json:"canSubmit"`
	Success       bool           `json:"success"`
	ErrorMsg      string         `json:"errorMsg,omitempty"`
	CurrentClient *ClientSummary `json:"currentClient,omitempty"`
}

type RegisterForm struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Address               string `json:"address"`
	EmergencyContact      string `json:"emergencyContact"`
	Pass                  string `json:"-"`
	Confirm               string `json:"-"`
	NameError             string `json:"nameError,omitempty"`
	EmailError            string `json:"emailError,omitempty"`
	PhoneError            string `json:"phoneError,omitempty"`
	AddressError          string `json:"addressError,omitempty"`
	EmergencyContactError string `json:"emergencyContactError,omitempty"`
	PassError             string `json:"passError,omitempty"`
	ConfirmError          string `json:"confirmError,omitempty"`
	IsSubmitting          bool   `json:"isSubmitting"`
	CanSubmit             bool   `json:"canSubmit"`
	Success               bool   `json:"success"`
	ErrorMsg              string `json:"errorMsg,omitempty"`
}

type PetList struct {
	Status      LoadStatus   `json:"status"`
	Pets        []models.Pet `json:"pets"`
	Error       string       `json:"error,omitempty"`
	SelectedPet *models.Pet  `json:"selectedPet,omitempty"`
}

type AppointmentList struct {
	Status       LoadStatus           `json:"status"`
	Appointments []models.Appointment `json:"appointments"`
	Error        string               `json:"error,omitempty"`
}

type Session struct {
	Status   SessionStatus `json:"status"`
	ClientID int64         `json:"clientId,omitempty"`
	Name     string        `json:"name,omitempty"`
	Email    string        `json:"email,omitempty"`
}

// PetInput is the raw add-pet form. Optional fields may be blank.
type PetInput struct {
	Name         string `json:"name"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	BirthDate    string `json:"birthDate"`
	Weight       string `json:"weight"`
	Color        string `json:"color"`
	MedicalNotes string `json:"medicalNotes"`
}

// AppointmentInput is the raw booking form.
type AppointmentInput struct {
	PetID   int64  `json:"petId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
}
