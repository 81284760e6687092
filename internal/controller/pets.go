package controller

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"vethome/internal/models"
	"vethome/internal/services"
	"vethome/internal/validators"
)

const (
	msgNoSession        = "No active session"
	msgLoadPetsFailed   = "Could not load pets"
	msgAddPetFailed     = "Could not add pet"
	msgUpdateWeightFail = "Could not update weight"
	msgDeletePetFailed  = "Could not delete pet"
	msgPetNotFound      = "Pet not found"
)

// LoadPets re-reads the logged-in client's pets.
func (c *Controller) LoadPets() {
	ownerID, ok := c.beginPetOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		c.reloadPets(ctx, ownerID, "")
	})
}

// AddPet validates the form and stores the pet for the logged-in client.
// Invalid input only sets the list error.
func (c *Controller) AddPet(in PetInput) {
	if msg := validatePet(in); msg != "" {
		c.pets.Update(func(p PetList) PetList {
			p.Error = msg
			return p
		})
		return
	}
	ownerID, ok := c.beginPetOp()
	if !ok {
		return
	}

	weight, _ := validators.ParseWeight(in.Weight)
	c.launch(func(ctx context.Context) {
		_, err := c.records.AddPet(ctx, services.AddPetInput{
			OwnerID:      ownerID,
			Name:         in.Name,
			Species:      in.Species,
			Breed:        in.Breed,
			BirthDate:    optional(in.BirthDate),
			Weight:       weight,
			Color:        optional(in.Color),
			MedicalNotes: optional(in.MedicalNotes),
		})
		c.reloadPets(ctx, ownerID, c.petOpError(err, msgAddPetFailed))
	})
}

func (c *Controller) UpdatePetWeight(petID int64, weight float64) {
	if msg := validators.Weight(strconv.FormatFloat(weight, 'f', -1, 64)); msg != "" {
		c.pets.Update(func(p PetList) PetList {
			p.Error = msg
			return p
		})
		return
	}
	ownerID, ok := c.beginPetOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		err := c.ensureOwnPet(ctx, ownerID, petID)
		if err == nil {
			err = c.records.UpdatePetWeight(ctx, petID, weight)
		}
		c.reloadPets(ctx, ownerID, c.petOpError(err, msgUpdateWeightFail))
	})
}

func (c *Controller) DeletePet(petID int64) {
	ownerID, ok := c.beginPetOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		err := c.ensureOwnPet(ctx, ownerID, petID)
		if err == nil {
			err = c.records.DeletePet(ctx, petID)
		}
		c.reloadPets(ctx, ownerID, c.petOpError(err, msgDeletePetFailed))
		// Its appointments went with it.
		c.reloadAppointments(ctx, ownerID, "")
	})
}

// SelectPet marks a pet of the loaded list as selected, or clears the
// selection when id is not in the list. It reports whether a pet was found.
func (c *Controller) SelectPet(petID int64) bool {
	found := false
	c.pets.Update(func(p PetList) PetList {
		p.SelectedPet = nil
		for i := range p.Pets {
			if p.Pets[i].ID == petID {
				pet := p.Pets[i]
				p.SelectedPet = &pet
				found = true
				break
			}
		}
		return p
	})
	return found
}

// beginPetOp moves the list to Loading, or records an error when nobody is
// logged in.
func (c *Controller) beginPetOp() (int64, bool) {
	ownerID, ok := c.ownerID()
	c.pets.Update(func(p PetList) PetList {
		if !ok {
			p.Error = msgNoSession
			return p
		}
		p.Status = StatusLoading
		p.Error = ""
		return p
	})
	return ownerID, ok
}

func (c *Controller) ensureOwnPet(ctx context.Context, ownerID, petID int64) error {
	pets, err := c.records.GetPetsByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(pets, func(p models.Pet) bool { return p.ID == petID }) {
		return services.ErrPetNotFound
	}
	return nil
}

func (c *Controller) petOpError(err error, generic string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, services.ErrPetNotFound):
		return msgPetNotFound
	default:
		c.log.WithError(err).Error(generic)
		return generic
	}
}

// reloadPets replaces the list with a fresh read. opErr, when set, is the
// failure of the operation that preceded the reload.
func (c *Controller) reloadPets(ctx context.Context, ownerID int64, opErr string) {
	pets, err := c.records.GetPetsByOwner(ctx, ownerID)
	if err != nil {
		c.log.WithError(err).WithField("owner_id", ownerID).Error("failed to load pets")
		if !c.isCurrentOwner(ownerID) {
			return
		}
		c.pets.Update(func(p PetList) PetList {
			p.Status = StatusError
			p.Error = msgLoadPetsFailed
			return p
		})
		return
	}
	if !c.isCurrentOwner(ownerID) {
		return
	}

	c.pets.Update(func(p PetList) PetList {
		p.Pets = pets
		p.Error = opErr
		p.Status = StatusLoaded
		if opErr != "" {
			p.Status = StatusError
		}
		if p.SelectedPet != nil {
			id := p.SelectedPet.ID
			p.SelectedPet = nil
			for i := range pets {
				if pets[i].ID == id {
					pet := pets[i]
					p.SelectedPet = &pet
					break
				}
			}
		}
		return p
	})
	c.login.Update(func(f LoginForm) LoginForm {
		if f.CurrentClient != nil && f.CurrentClient.ID == ownerID {
			summary := *f.CurrentClient
			summary.PetsCount = len(pets)
			f.CurrentClient = &summary
		}
		return f
	})
}

// validatePet returns the first field error of the form.
func validatePet(in PetInput) string {
	checks := []string{
		validators.PetName(in.Name),
		validators.Species(in.Species),
		validators.Breed(in.Breed),
		validators.BirthDate(in.BirthDate),
		validators.Weight(in.Weight),
		validators.Color(in.Color),
		validators.MedicalNotes(in.MedicalNotes),
	}
	for _, msg := range checks {
		if msg != "" {
			return msg
		}
	}
	return ""
}
