package services

import "errors"

// Expected business failures of the record store. Callers match them with errors.Is.
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrOwnerNotFound          = errors.New("owner not found")
	ErrPetNotFound            = errors.New("pet not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidStatus          = errors.New("invalid appointment status")
)
