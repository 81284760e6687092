package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vethome/internal/logger"
	"vethome/internal/models"
	"vethome/internal/repositories"
)

// RecordStore mediates between validated commands and the client, pet and
// appointment tables.
type RecordStore struct {
	clients      repositories.ClientRepository
	pets         repositories.PetRepository
	appointments repositories.AppointmentRepository
	publisher    EventPublisher // optional
	log          *logrus.Entry
	passwordCost int
}

// NewRecordStore creates a new RecordStore. publisher may be nil.
func NewRecordStore(
	clients repositories.ClientRepository,
	pets repositories.PetRepository,
	appointments repositories.AppointmentRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *RecordStore {
	return &RecordStore{
		clients:      clients,
		pets:         pets,
		appointments: appointments,
		publisher:    publisher,
		log:          log.Component("record_store"),
		passwordCost: bcrypt.DefaultCost,
	}
}

// RegisterInput carries the fields of a new client.
type RegisterInput struct {
	Name             string
	Email            string
	Phone            string
	Address          *string
	EmergencyContact *string
	Password         string
}

// AddPetInput carries the fields of a new pet.
type AddPetInput struct {
	OwnerID      int64
	Name         string
	Species      string
	Breed        string
	BirthDate    *string
	Weight       *float64
	Color        *string
	MedicalNotes *string
}

// Login returns the client whose email and password match.
func (s *RecordStore) Login(ctx context.Context, email, password string) (*models.Client, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Do not reveal whether the email exists.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return client, nil
}

// Register creates a client after checking that the email is free and
// returns the generated ID.
func (s *RecordStore) Register(ctx context.Context, in RegisterInput) (int64, error) {
	existing, err := s.clients.GetByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return 0, ErrEmailAlreadyRegistered
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return 0, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.passwordCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	client := &models.Client{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
		Password:         string(hashedPassword),
	}
	if err := s.clients.Create(ctx, client); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index catches it here.
		if errors.Is(err, repositories.ErrDuplicate) {
			return 0, ErrEmailAlreadyRegistered
		}
		return 0, fmt.Errorf("failed to register client: %w", err)
	}

	s.log.WithField("client_id", client.ID).Info("client registered")
	s.publish(EventClientRegistered, map[string]interface{}{
		"clientID": client.ID,
		"email":    client.Email,
	})
	return client.ID, nil
}

// GetClientByID returns nil without error when the client does not exist.
func (s *RecordStore) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func (s *RecordStore) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.clients.GetAll(ctx)
}

// DeleteClient removes a client and, by cascade, its pets and appointments.
func (s *RecordStore) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOwnerNotFound
		}
		return err
	}
	s.publish(EventClientDeleted, map[string]interface{}{"clientID": id})
	return nil
}

func (s *RecordStore) CountAllClients(ctx context.Context) (int64, error) {
	return s.clients.Count(ctx)
}

// AddPet stores a pet for an existing owner and returns its ID.
func (s *RecordStore) AddPet(ctx context.Context, in AddPetInput) (int64, error) {
	if _, err := s.clients.GetByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrOwnerNotFound
		}
		return 0, fmt.Errorf("failed to check owner: %w", err)
	}

	pet := &models.Pet{
		OwnerID:      in.OwnerID,
		Name:         in.Name,
		Species:      in.Species,
		Breed:        in.Breed,
		BirthDate:    in.BirthDate,
		Weight:       in.Weight,
		Color:        in.Color,
		MedicalNotes: in.MedicalNotes,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return 0, err
	}

	s.publish(EventPetAdded, map[string]interface{}{
		"petID":   pet.ID,
		"ownerID": pet.OwnerID,
		"name":    pet.Name,
		"species": pet.Species,
	})
	return pet.ID, nil
}

// GetPetsByOwner lists the owner's pets ordered by name.
func (s *RecordStore) GetPetsByOwner(ctx context.Context, ownerID int64) ([]models.Pet, error) {
	return s.pets.GetByOwner(ctx, ownerID)
}

func (s *RecordStore) UpdatePetWeight(ctx context.Context, petID int64, weight float64) error {
	if err := s.pets.UpdateWeight(ctx, petID, weight); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	s.publish(EventPetWeightUpdated, map[string]interface{}{
		"petID":  petID,
		"weight": weight,
	})
	return nil
}

func (s *RecordStore) DeletePet(ctx context.Context, petID int64) error {
	if err := s.pets.Delete(ctx, petID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	s.publish(EventPetDeleted, map[string]interface{}{"petID": petID})
	return nil
}

func (s *RecordStore) CountPetsForOwner(ctx context.Context, ownerID int64) (int64, error) {
	return s.pets.CountByOwner(ctx, ownerID)
}

func (s *RecordStore) CountAllPets(ctx context.Context) (int64, error) {
	return s.pets.Count(ctx)
}
