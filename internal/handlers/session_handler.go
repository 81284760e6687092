package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vethome/internal/controller"
)

// SessionHandler exposes the login and register forms, the session and the
// one-shot messages of a Controller.
type SessionHandler struct {
	ctrl     *controller.Controller
	validate *validator.Validate
}

func NewSessionHandler(ctrl *controller.Controller) *SessionHandler {
	return &SessionHandler{
		ctrl:     ctrl,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Put("/login/form", h.HandleLoginForm)
	router.Post("/login", h.HandleSubmitLogin)
	router.Get("/login", h.HandleGetLogin)
	router.Delete("/login/result", h.HandleClearLoginResult)

	router.Put("/register/form", h.HandleRegisterForm)
	router.Post("/register", h.HandleSubmitRegister)
	router.Get("/register", h.HandleGetRegister)
	router.Delete("/register/result", h.HandleClearRegisterResult)

	router.Get("/session", h.HandleGetSession)
	router.Post("/logout", h.HandleLogout)
	router.Get("/messages", h.HandleDrainMessages)
}

// Absent fields leave the form value untouched.
type loginFormRequest struct {
	Email *string `json:"email"`
	Pass  *string `json:"pass"`
}

type registerFormRequest struct {
	Name             *string `json:"name" validate:"omitempty,max=100"`
	Email            *string `json:"email" validate:"omitempty,max=254"`
	Phone            *string `json:"phone" validate:"omitempty,max=32"`
	Address          *string `json:"address" validate:"omitempty,max=400"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=32"`
	Pass             *string `json:"pass" validate:"omitempty,max=128"`
	Confirm          *string `json:"confirm" validate:"omitempty,max=128"`
}

func (h *SessionHandler) HandleLoginForm(c *fiber.Ctx) error {
	var req loginFormRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	if req.Email != nil {
		h.ctrl.OnLoginEmailChange(*req.Email)
	}
	if req.Pass != nil {
		h.ctrl.OnLoginPassChange(*req.Pass)
	}
	return c.JSON(h.ctrl.LoginForm().Get())
}

// HandleSubmitLogin waits for the attempt to settle. A form that cannot be
// submitted is answered with 422, an existing session with 409.
func (h *SessionHandler) HandleSubmitLogin(c *fiber.Ctx) error {
	if session := h.ctrl.Session().Get(); session.Status != controller.SessionAnonymous {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Already logged in",
			"session": session,
		})
	}
	if form := h.ctrl.LoginForm().Get(); !form.CanSubmit {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Login form is incomplete",
			"form":    form,
		})
	}
	h.ctrl.SubmitLogin()
	h.ctrl.Wait()

	form := h.ctrl.LoginForm().Get()
	status := fiber.StatusOK
	if !form.Success {
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{
		"form":    form,
		"session": h.ctrl.Session().Get(),
	})
}

func (h *SessionHandler) HandleGetLogin(c *fiber.Ctx) error {
	return c.JSON(h.ctrl.LoginForm().Get())
}

func (h *SessionHandler) HandleClearLoginResult(c *fiber.Ctx) error {
	h.ctrl.ClearLoginResult()
	return c.JSON(h.ctrl.LoginForm().Get())
}

func (h *SessionHandler) HandleRegisterForm(c *fiber.Ctx) error {
	var req registerFormRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	if req.Name != nil {
		h.ctrl.OnNameChange(*req.Name)
	}
	if req.Email != nil {
		h.ctrl.OnRegisterEmailChange(*req.Email)
	}
	if req.Phone != nil {
		h.ctrl.OnPhoneChange(*req.Phone)
	}
	if req.Address != nil {
		h.ctrl.OnAddressChange(*req.Address)
	}
	if req.EmergencyContact != nil {
		h.ctrl.OnEmergencyContactChange(*req.EmergencyContact)
	}
	if req.Pass != nil {
		h.ctrl.OnRegisterPassChange(*req.Pass)
	}
	if req.Confirm != nil {
		h.ctrl.OnConfirmChange(*req.Confirm)
	}
	return c.JSON(h.ctrl.RegisterForm().Get())
}

func (h *SessionHandler) HandleSubmitRegister(c *fiber.Ctx) error {
	if form := h.ctrl.RegisterForm().Get(); !form.CanSubmit {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Registration form is incomplete",
			"form":    form,
		})
	}
	h.ctrl.SubmitRegister()
	h.ctrl.Wait()

	form := h.ctrl.RegisterForm().Get()
	switch {
	case form.Success:
		return c.Status(fiber.StatusCreated).JSON(form)
	case form.ErrorMsg != "":
		return c.Status(fiber.StatusConflict).JSON(form)
	default:
		return c.JSON(form)
	}
}

func (h *SessionHandler) HandleGetRegister(c *fiber.Ctx) error {
	return c.JSON(h.ctrl.RegisterForm().Get())
}

func (h *SessionHandler) HandleClearRegisterResult(c *fiber.Ctx) error {
	h.ctrl.ClearRegisterResult()
	return c.JSON(h.ctrl.RegisterForm().Get())
}

func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(h.ctrl.Session().Get())
}

func (h *SessionHandler) HandleLogout(c *fiber.Ctx) error {
	h.ctrl.Logout()
	h.ctrl.Wait()
	return c.JSON(h.ctrl.Session().Get())
}

// HandleDrainMessages returns every pending one-shot message.
func (h *SessionHandler) HandleDrainMessages(c *fiber.Ctx) error {
	messages := make([]string, 0)
	for {
		select {
		case msg := <-h.ctrl.Messages():
			messages = append(messages, msg)
		default:
			return c.JSON(fiber.Map{"messages": messages})
		}
	}
}
