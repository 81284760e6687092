// Package validators holds the field rules applied to raw form input.
//
// Every validator returns the message to show next to the field, or an empty
// string when the input is acceptable. They are pure and cheap enough to run on
// every keystroke.
package validators

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	lettersAndSpaces = regexp.MustCompile(`^[\p{L} ]+$`)
	digitsOnly       = regexp.MustCompile(`^[0-9]+$`)
	isoDate          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockTime        = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// SpeciesOptions lists the species a pet may have.
var SpeciesOptions = []string{"Dog", "Cat", "Rabbit", "Bird", "Other"}

// ServiceOptions lists the services an appointment can be booked for.
var ServiceOptions = []string{
	"General consultation",
	"Vaccination",
	"Weight check",
	"Dental cleaning",
	"Grooming",
	"Other",
}

// MaxWeight is the heaviest plausible pet weight in kilograms.
const MaxWeight = 200.0

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// Email requires a non-blank, well-formed address.
func Email(email string) string {
	if blank(email) {
		return "Email is required"
	}
	if err := validate.Var(email, "email"); err != nil {
		return "Invalid email format"
	}
	return ""
}

// NameLettersOnly validates a person's name.
func NameLettersOnly(name string) string {
	if blank(name) {
		return "Name is required"
	}
	if !lettersAndSpaces.MatchString(name) {
		return "Only letters and spaces"
	}
	return ""
}

func phoneRules(phone string) string {
	if !digitsOnly.MatchString(phone) {
		return "Only digits"
	}
	if n := length(phone); n < 8 || n > 15 {
		return "Must have between 8 and 15 digits"
	}
	return ""
}

// PhoneDigitsOnly validates the mandatory contact phone.
func PhoneDigitsOnly(phone string) string {
	if blank(phone) {
		return "Phone is required"
	}
	return phoneRules(phone)
}

// EmergencyContact is optional but follows the phone rules when present.
func EmergencyContact(contact string) string {
	if blank(contact) {
		return ""
	}
	return phoneRules(contact)
}

// StrongPassword enforces length and character-class requirements.
func StrongPassword(pass string) string {
	if blank(pass) {
		return "Password is required"
	}
	if length(pass) < 8 {
		return "At least 8 characters"
	}
	if !strings.ContainsFunc(pass, unicode.IsUpper) {
		return "Must include an uppercase letter"
	}
	if !strings.ContainsFunc(pass, unicode.IsLower) {
		return "Must include a lowercase letter"
	}
	if !strings.ContainsFunc(pass, unicode.IsDigit) {
		return "Must include a number"
	}
	if !strings.ContainsFunc(pass, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) {
		return "Must include a symbol"
	}
	if strings.Contains(pass, " ") {
		return "Must not contain spaces"
	}
	return ""
}

// Confirm checks the confirmation field against the password.
func Confirm(pass, confirm string) string {
	if blank(confirm) {
		return "Confirm your password"
	}
	if pass != confirm {
		return "Passwords do not match"
	}
	return ""
}

// PetName requires at least two letters or spaces.
func PetName(name string) string {
	if blank(name) {
		return "Pet name is required"
	}
	if length(name) < 2 {
		return "Name must have at least 2 characters"
	}
	if !lettersAndSpaces.MatchString(name) {
		return "Only letters and spaces"
	}
	return ""
}

// Species requires one of SpeciesOptions.
func Species(species string) string {
	if blank(species) {
		return "Species is required"
	}
	if !slices.Contains(SpeciesOptions, species) {
		return "Select a valid species"
	}
	return ""
}

// Breed requires at least two characters.
func Breed(breed string) string {
	if blank(breed) {
		return "Breed is required"
	}
	if length(breed) < 2 {
		return "Breed must have at least 2 characters"
	}
	return ""
}

// BirthDate only checks the YYYY-MM-DD shape, not calendar validity.
func BirthDate(date string) string {
	if blank(date) {
		return ""
	}
	if !isoDate.MatchString(date) {
		return "Invalid date format (YYYY-MM-DD)"
	}
	return ""
}

// Weight is optional; when present it must be a number in (0, MaxWeight].
func Weight(weight string) string {
	if blank(weight) {
		return ""
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	switch {
	case err != nil || math.IsNaN(w) || math.IsInf(w, 0):
		return "Weight must be a valid number"
	case w <= 0:
		return "Weight must be greater than 0"
	case w > MaxWeight:
		return "Weight looks wrong (max. 200 kg)"
	}
	return ""
}

// Color is optional; when present only letters and spaces are allowed.
func Color(color string) string {
	if blank(color) {
		return ""
	}
	if !lettersAndSpaces.MatchString(color) {
		return "Only letters and spaces"
	}
	return ""
}

// MedicalNotes is optional and limited to 500 characters.
func MedicalNotes(notes string) string {
	if blank(notes) {
		return ""
	}
	if length(notes) > 500 {
		return "At most 500 characters"
	}
	return ""
}

// Address is optional; when present it must have 5 to 200 characters.
func Address(address string) string {
	if blank(address) {
		return ""
	}
	switch n := length(address); {
	case n < 5:
		return "At least 5 characters"
	case n > 200:
		return "At most 200 characters"
	}
	return ""
}

// AppointmentDate requires a YYYY-MM-DD date.
func AppointmentDate(date string) string {
	if blank(date) {
		return "Date is required"
	}
	if !isoDate.MatchString(date) {
		return "Invalid date format (YYYY-MM-DD)"
	}
	return ""
}

// AppointmentTime requires a 24-hour HH:MM time.
func AppointmentTime(t string) string {
	if blank(t) {
		return "Time is required"
	}
	if !clockTime.MatchString(t) {
		return "Invalid time format (HH:MM)"
	}
	return ""
}

// Service requires one of ServiceOptions.
func Service(service string) string {
	if blank(service) {
		return "Service is required"
	}
	if !slices.Contains(ServiceOptions, service) {
		return "Select a valid service"
	}
	return ""
}

// LettersAndSpaces drops every rune that is neither a letter nor whitespace.
func LettersAndSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// DigitsOnly drops every rune that is not a decimal digit.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ParseWeight converts an optional weight field; blank input yields nil.
func ParseWeight(weight string) (*float64, error) {
	if blank(weight) {
		return nil, nil
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
