package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vethome/internal/controller"
)

// AppointmentHandler handles HTTP requests for the logged-in client's appointments.
type AppointmentHandler struct {
	ctrl     *controller.Controller
	validate *validator.Validate
}

func NewAppointmentHandler(ctrl *controller.Controller) *AppointmentHandler {
	return &AppointmentHandler{
		ctrl:     ctrl,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the appointment routes. The router must already require a session.
func (h *AppointmentHandler) RegisterRoutes(router fiber.Router) {
	appointmentRoutes := router.Group("/appointments")
	appointmentRoutes.Get("/", h.HandleGetAppointments)
	appointmentRoutes.Post("/", h.HandleScheduleAppointment)
	appointmentRoutes.Patch("/:id/status", h.HandleUpdateStatus)
}

type scheduleRequest struct {
	PetID   int64  `json:"petId" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Service string `json:"service" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

func (h *AppointmentHandler) HandleGetAppointments(c *fiber.Ctx) error {
	h.ctrl.LoadAppointments()
	h.ctrl.Wait()
	return appointmentListResponse(c, h.ctrl.AppointmentList().Get(), fiber.StatusOK)
}

func (h *AppointmentHandler) HandleScheduleAppointment(c *fiber.Ctx) error {
	var req scheduleRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	h.ctrl.ScheduleAppointment(controller.AppointmentInput{
		PetID:   req.PetID,
		Date:    req.Date,
		Time:    req.Time,
		Service: req.Service,
	})
	h.ctrl.Wait()
	return appointmentListResponse(c, h.ctrl.AppointmentList().Get(), fiber.StatusCreated)
}

func (h *AppointmentHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid appointment ID"})
	}
	var req statusRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	h.ctrl.UpdateAppointmentStatus(int64(id), req.Status)
	h.ctrl.Wait()
	return appointmentListResponse(c, h.ctrl.AppointmentList().Get(), fiber.StatusOK)
}

func appointmentListResponse(c *fiber.Ctx, list controller.AppointmentList, okStatus int) error {
	if list.Error != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(list)
	}
	return c.Status(okStatus).JSON(list)
}
