package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"vethome/internal/services"
	"vethome/internal/validators"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgAuthFailed         = "Authentication failed"
	msgEmailTaken         = "Email is already registered"
	msgRegisterFailed     = "Registration failed"
	msgSessionClosed      = "Session closed"
)

func (c *Controller) OnLoginEmailChange(value string) {
	c.login.Update(func(f LoginForm) LoginForm {
		f.Email = value
		f.EmailError = validators.Email(value)
		return recomputeLogin(f)
	})
}

func (c *Controller) OnLoginPassChange(value string) {
	c.login.Update(func(f LoginForm) LoginForm {
		f.Pass = value
		return recomputeLogin(f)
	})
}

func recomputeLogin(f LoginForm) LoginForm {
	f.CanSubmit = f.EmailError == "" && f.PassError == "" &&
		strings.TrimSpace(f.Email) != "" && strings.TrimSpace(f.Pass) != ""
	return f
}

// SubmitLogin authenticates with the current form values. It is a no-op
// unless the session is anonymous and the form is valid and idle.
func (c *Controller) SubmitLogin() {
	claimed := false
	c.session.Update(func(s Session) Session {
		if s.Status != SessionAnonymous {
			return s
		}
		claimed = true
		return Session{Status: SessionAuthenticating}
	})
	if !claimed {
		return
	}

	var form LoginForm
	accepted := false
	c.login.Update(func(f LoginForm) LoginForm {
		if !f.CanSubmit || f.IsSubmitting {
			return f
		}
		accepted = true
		f.IsSubmitting = true
		f.Success = false
		f.ErrorMsg = ""
		form = f
		return f
	})
	if !accepted {
		c.session.Set(Session{Status: SessionAnonymous})
		return
	}

	launched := c.launch(func(ctx context.Context) {
		client, err := c.records.Login(ctx, form.Email, form.Pass)
		if err != nil {
			msg := msgAuthFailed
			if errors.Is(err, services.ErrInvalidCredentials) {
				msg = msgInvalidCredentials
			} else {
				c.log.WithError(err).Error("login failed")
			}
			c.session.Set(Session{Status: SessionAnonymous})
			c.login.Update(func(f LoginForm) LoginForm {
				f.IsSubmitting = false
				f.ErrorMsg = msg
				return f
			})
			return
		}

		if err := c.prefs.SetUserInfo(ctx, client.Email, client.Name, strconv.FormatInt(client.ID, 10)); err != nil {
			c.log.WithError(err).Warn("failed to persist user info")
		}
		if err := c.prefs.SetLoggedIn(ctx, true); err != nil {
			c.log.WithError(err).Warn("failed to persist login flag")
		}

		c.session.Set(Session{
			Status:   SessionAuthenticated,
			ClientID: client.ID,
			Name:     client.Name,
			Email:    client.Email,
		})
		c.login.Update(func(f LoginForm) LoginForm {
			f.IsSubmitting = false
			f.Success = true
			f.CurrentClient = &ClientSummary{ID: client.ID, Name: client.Name, Email: client.Email}
			return f
		})
		c.log.WithField("client_id", client.ID).Info("client logged in")
		c.emit("Welcome, " + client.Name + "!")

		c.reloadPets(ctx, client.ID, "")
		c.reloadAppointments(ctx, client.ID, "")
	})
	if !launched {
		c.session.Set(Session{Status: SessionAnonymous})
		c.login.Update(func(f LoginForm) LoginForm {
			f.IsSubmitting = false
			return f
		})
	}
}

func (c *Controller) ClearLoginResult() {
	c.login.Update(func(f LoginForm) LoginForm {
		f.Success = false
		f.ErrorMsg = ""
		return f
	})
}

// OnNameChange keeps only letters and spaces before validating.
func (c *Controller) OnNameChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Name = validators.LettersAndSpaces(value)
		f.NameError = validators.NameLettersOnly(f.Name)
		return recomputeRegister(f)
	})
}

func (c *Controller) OnRegisterEmailChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Email = value
		f.EmailError = validators.Email(value)
		return recomputeRegister(f)
	})
}

// OnPhoneChange keeps only digits before validating.
func (c *Controller) OnPhoneChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Phone = validators.DigitsOnly(value)
		f.PhoneError = validators.PhoneDigitsOnly(f.Phone)
		return recomputeRegister(f)
	})
}

func (c *Controller) OnAddressChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Address = value
		f.AddressError = validators.Address(value)
		return recomputeRegister(f)
	})
}

func (c *Controller) OnEmergencyContactChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.EmergencyContact = validators.DigitsOnly(value)
		f.EmergencyContactError = validators.EmergencyContact(f.EmergencyContact)
		return recomputeRegister(f)
	})
}

// OnRegisterPassChange also re-checks the confirmation once one was typed.
func (c *Controller) OnRegisterPassChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Pass = value
		f.PassError = validators.StrongPassword(value)
		if f.Confirm != "" {
			f.ConfirmError = validators.Confirm(f.Pass, f.Confirm)
		}
		return recomputeRegister(f)
	})
}

func (c *Controller) OnConfirmChange(value string) {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Confirm = value
		f.ConfirmError = validators.Confirm(f.Pass, value)
		return recomputeRegister(f)
	})
}

// recomputeRegister enables submit when no field has an error and every
// required field is filled. Address and emergency contact are optional.
func recomputeRegister(f RegisterForm) RegisterForm {
	noErrors := f.NameError == "" && f.EmailError == "" && f.PhoneError == "" &&
		f.AddressError == "" && f.EmergencyContactError == "" &&
		f.PassError == "" && f.ConfirmError == ""
	filled := strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Phone) != "" && strings.TrimSpace(f.Pass) != "" &&
		strings.TrimSpace(f.Confirm) != ""
	f.CanSubmit = noErrors && filled
	return f
}

// SubmitRegister creates the client. It does not log in.
func (c *Controller) SubmitRegister() {
	var form RegisterForm
	accepted := false
	c.register.Update(func(f RegisterForm) RegisterForm {
		if !f.CanSubmit || f.IsSubmitting {
			return f
		}
		accepted = true
		f.IsSubmitting = true
		f.Success = false
		f.ErrorMsg = ""
		form = f
		return f
	})
	if !accepted {
		return
	}

	launched := c.launch(func(ctx context.Context) {
		_, err := c.records.Register(ctx, services.RegisterInput{
			Name:             strings.TrimSpace(form.Name),
			Email:            strings.TrimSpace(form.Email),
			Phone:            form.Phone,
			Address:          optional(form.Address),
			EmergencyContact: optional(form.EmergencyContact),
			Password:         form.Pass,
		})
		c.register.Update(func(f RegisterForm) RegisterForm {
			f.IsSubmitting = false
			switch {
			case err == nil:
				f.Success = true
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				f.ErrorMsg = msgEmailTaken
			default:
				f.ErrorMsg = msgRegisterFailed
			}
			return f
		})
		if err != nil && !errors.Is(err, services.ErrEmailAlreadyRegistered) {
			c.log.WithError(err).Error("registration failed")
		}
	})
	if !launched {
		c.register.Update(func(f RegisterForm) RegisterForm {
			f.IsSubmitting = false
			return f
		})
	}
}

func (c *Controller) ClearRegisterResult() {
	c.register.Update(func(f RegisterForm) RegisterForm {
		f.Success = false
		f.ErrorMsg = ""
		return f
	})
}

// Logout forgets the persisted identity and resets every projection.
func (c *Controller) Logout() {
	c.launch(func(ctx context.Context) {
		if err := c.prefs.ClearUserData(ctx); err != nil {
			c.log.WithError(err).Warn("failed to clear persisted session")
		}
		c.login.Set(LoginForm{})
		c.register.Set(RegisterForm{})
		c.pets.Set(PetList{Status: StatusIdle})
		c.appointments.Set(AppointmentList{Status: StatusIdle})
		c.session.Set(Session{Status: SessionAnonymous})
		c.emit(msgSessionClosed)
	})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
