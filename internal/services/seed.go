package services

import (
	"context"
	"fmt"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

// SeedDemoData inserts two demo clients and their pets, but only into an
// empty clients table.
func (s *RecordStore) SeedDemoData(ctx context.Context) error {
	n, err := s.clients.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.WithField("clients", n).Debug("clients table not empty, skipping demo seed")
		return nil
	}

	admin, err := s.Register(ctx, RegisterInput{
		Name:             "Admin VetHome",
		Email:            "admin@vethome.cl",
		Phone:            "56911111111",
		Address:          strPtr("Av. Principal 123"),
		EmergencyContact: strPtr("56999999999"),
		Password:         "Admin123!",
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin client: %w", err)
	}
	maria, err := s.Register(ctx, RegisterInput{
		Name:             "María González",
		Email:            "maria@vethome.cl",
		Phone:            "56922222222",
		Address:          strPtr("Calle Secundaria 456"),
		EmergencyContact: strPtr("56988888888"),
		Password:         "Maria123!",
	})
	if err != nil {
		return fmt.Errorf("failed to seed client: %w", err)
	}

	pets := []AddPetInput{
		{
			OwnerID: admin, Name: "Firulais", Species: "Dog", Breed: "Labrador Retriever",
			BirthDate: strPtr("2022-05-15"), Weight: floatPtr(25.5), Color: strPtr("Golden"),
			MedicalNotes: strPtr("Vaccines up to date. Allergic to some grains."),
		},
		{
			OwnerID: admin, Name: "Michi", Species: "Cat", Breed: "Siamese",
			BirthDate: strPtr("2023-01-20"), Weight: floatPtr(4.2), Color: strPtr("White and brown"),
			MedicalNotes: strPtr("Neutered. Special kidney diet."),
		},
		{
			OwnerID: maria, Name: "Toby", Species: "Dog", Breed: "Beagle",
			BirthDate: strPtr("2021-11-10"), Weight: floatPtr(12.0), Color: strPtr("Tricolor"),
			MedicalNotes: strPtr("Energetic. Needs daily exercise."),
		},
	}
	for _, p := range pets {
		if _, err := s.AddPet(ctx, p); err != nil {
			return fmt.Errorf("failed to seed pet %s: %w", p.Name, err)
		}
	}

	s.log.WithField("pets", len(pets)).Info("seeded demo data")
	return nil
}
