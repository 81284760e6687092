package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vethome/internal/controller"
)

// PetHandler handles HTTP requests for the logged-in client's pets.
type PetHandler struct {
	ctrl     *controller.Controller
	validate *validator.Validate
}

func NewPetHandler(ctrl *controller.Controller) *PetHandler {
	return &PetHandler{
		ctrl:     ctrl,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the pet routes. The router must already require a session.
func (h *PetHandler) RegisterRoutes(router fiber.Router) {
	petRoutes := router.Group("/pets")
	petRoutes.Get("/", h.HandleGetPets)
	petRoutes.Post("/", h.HandleAddPet)
	petRoutes.Put("/selected/:id", h.HandleSelectPet)
	petRoutes.Patch("/:id/weight", h.HandleUpdateWeight)
	petRoutes.Delete("/:id", h.HandleDeletePet)
}

type weightRequest struct {
	Weight float64 `json:"weight" validate:"required"`
}

// HandleGetPets reloads the list unless ?cached=true.
func (h *PetHandler) HandleGetPets(c *fiber.Ctx) error {
	if !c.QueryBool("cached") {
		h.ctrl.LoadPets()
		h.ctrl.Wait()
	}
	return petListResponse(c, h.ctrl.PetList().Get(), fiber.StatusOK)
}

func (h *PetHandler) HandleAddPet(c *fiber.Ctx) error {
	var req controller.PetInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	h.ctrl.AddPet(req)
	h.ctrl.Wait()
	return petListResponse(c, h.ctrl.PetList().Get(), fiber.StatusCreated)
}

func (h *PetHandler) HandleSelectPet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid pet ID"})
	}
	if !h.ctrl.SelectPet(int64(id)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Pet not found"})
	}
	return c.JSON(h.ctrl.PetList().Get())
}

func (h *PetHandler) HandleUpdateWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid pet ID"})
	}
	var req weightRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	h.ctrl.UpdatePetWeight(int64(id), req.Weight)
	h.ctrl.Wait()
	return petListResponse(c, h.ctrl.PetList().Get(), fiber.StatusOK)
}

func (h *PetHandler) HandleDeletePet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid pet ID"})
	}
	h.ctrl.DeletePet(int64(id))
	h.ctrl.Wait()
	return petListResponse(c, h.ctrl.PetList().Get(), fiber.StatusOK)
}

// petListResponse answers 422 when the projection carries an error.
func petListResponse(c *fiber.Ctx, list controller.PetList, okStatus int) error {
	if list.Error != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(list)
	}
	return c.Status(okStatus).JSON(list)
}
