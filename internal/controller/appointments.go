package controller

import (
	"context"
	"errors"

	"vethome/internal/services"
	"vethome/internal/validators"
)

const (
	msgLoadAppointmentsFailed = "Could not load appointments"
	msgScheduleFailed         = "Could not schedule appointment"
	msgUpdateStatusFailed     = "Could not update appointment"
	msgAppointmentNotFound    = "Appointment not found"
	msgInvalidStatus          = "Invalid appointment status"
)

func (c *Controller) LoadAppointments() {
	ownerID, ok := c.beginAppointmentOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		c.reloadAppointments(ctx, ownerID, "")
	})
}

// ScheduleAppointment books a pending appointment for one of the client's pets.
func (c *Controller) ScheduleAppointment(in AppointmentInput) {
	if msg := validateAppointment(in); msg != "" {
		c.appointments.Update(func(a AppointmentList) AppointmentList {
			a.Error = msg
			return a
		})
		return
	}
	ownerID, ok := c.beginAppointmentOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		_, err := c.records.ScheduleAppointment(ctx, services.ScheduleInput{
			OwnerID: ownerID,
			PetID:   in.PetID,
			Date:    in.Date,
			Time:    in.Time,
			Service: in.Service,
		})
		c.reloadAppointments(ctx, ownerID, c.appointmentOpError(err, msgScheduleFailed))
	})
}

func (c *Controller) UpdateAppointmentStatus(id int64, status string) {
	ownerID, ok := c.beginAppointmentOp()
	if !ok {
		return
	}
	c.launch(func(ctx context.Context) {
		err := c.ensureOwnAppointment(ctx, ownerID, id)
		if err == nil {
			err = c.records.UpdateAppointmentStatus(ctx, id, status)
		}
		c.reloadAppointments(ctx, ownerID, c.appointmentOpError(err, msgUpdateStatusFailed))
	})
}

func (c *Controller) beginAppointmentOp() (int64, bool) {
	ownerID, ok := c.ownerID()
	c.appointments.Update(func(a AppointmentList) AppointmentList {
		if !ok {
			a.Error = msgNoSession
			return a
		}
		a.Status = StatusLoading
		a.Error = ""
		return a
	})
	return ownerID, ok
}

func (c *Controller) ensureOwnAppointment(ctx context.Context, ownerID, id int64) error {
	appointments, err := c.records.GetAppointmentsByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, a := range appointments {
		if a.ID == id {
			return nil
		}
	}
	return services.ErrAppointmentNotFound
}

func (c *Controller) appointmentOpError(err error, generic string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, services.ErrPetNotFound):
		return msgPetNotFound
	case errors.Is(err, services.ErrAppointmentNotFound):
		return msgAppointmentNotFound
	case errors.Is(err, services.ErrInvalidStatus):
		return msgInvalidStatus
	default:
		c.log.WithError(err).Error(generic)
		return generic
	}
}

func (c *Controller) reloadAppointments(ctx context.Context, ownerID int64, opErr string) {
	appointments, err := c.records.GetAppointmentsByOwner(ctx, ownerID)
	if err != nil {
		c.log.WithError(err).WithField("owner_id", ownerID).Error("failed to load appointments")
		if !c.isCurrentOwner(ownerID) {
			return
		}
		c.appointments.Update(func(a AppointmentList) AppointmentList {
			a.Status = StatusError
			a.Error = msgLoadAppointmentsFailed
			return a
		})
		return
	}
	if !c.isCurrentOwner(ownerID) {
		return
	}
	c.appointments.Update(func(a AppointmentList) AppointmentList {
		a.Appointments = appointments
		a.Error = opErr
		a.Status = StatusLoaded
		if opErr != "" {
			a.Status = StatusError
		}
		return a
	})
}

func validateAppointment(in AppointmentInput) string {
	if in.PetID <= 0 {
		return "Select a pet"
	}
	for _, msg := range []string{
		validators.AppointmentDate(in.Date),
		validators.AppointmentTime(in.Time),
		validators.Service(in.Service),
	} {
		if msg != "" {
			return msg
		}
	}
	return ""
}
