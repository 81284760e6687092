// Package controller turns user intents into store calls and publishes the
// results as observable view-state projections.
package controller

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"vethome/internal/logger"
	"vethome/internal/models"
	"vethome/internal/preferences"
	"vethome/internal/services"
	"vethome/internal/state"
)

// RecordStore is the subset of the record store the controller drives.
type RecordStore interface {
	Login(ctx context.Context, email, password string) (*models.Client, error)
	Register(ctx context.Context, in services.RegisterInput) (int64, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	AddPet(ctx context.Context, in services.AddPetInput) (int64, error)
	GetPetsByOwner(ctx context.Context, ownerID int64) ([]models.Pet, error)
	UpdatePetWeight(ctx context.Context, petID int64, weight float64) error
	DeletePet(ctx context.Context, petID int64) error
	ScheduleAppointment(ctx context.Context, in services.ScheduleInput) (int64, error)
	GetAppointmentsByOwner(ctx context.Context, ownerID int64) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status string) error
}

// PreferenceStore persists the session identity across restarts.
type PreferenceStore interface {
	SetLoggedIn(ctx context.Context, loggedIn bool) error
	SetUserInfo(ctx context.Context, email, name, id string) error
	ClearUserData(ctx context.Context) error
	Snapshot(ctx context.Context) (preferences.Snapshot, error)
}

const messageBuffer = 16

// Controller owns the LoginForm, RegisterForm, PetList, AppointmentList and
// Session projections. Every method returns immediately; store work runs on
// goroutines tracked until Wait or Close.
type Controller struct {
	records RecordStore
	prefs   PreferenceStore
	log     *logrus.Entry

	login        *state.Holder[LoginForm]
	register     *state.Holder[RegisterForm]
	pets         *state.Holder[PetList]
	appointments *state.Holder[AppointmentList]
	session      *state.Holder[Session]

	messages chan string

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	idle     *sync.Cond
	inFlight int
}

// New builds a Controller and starts rehydrating the session from prefs.
func New(records RecordStore, prefs PreferenceStore, log *logger.Logger) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		records:      records,
		prefs:        prefs,
		log:          log.Component("controller"),
		login:        state.NewHolder(LoginForm{}),
		register:     state.NewHolder(RegisterForm{}),
		pets:         state.NewHolder(PetList{Status: StatusIdle}),
		appointments: state.NewHolder(AppointmentList{Status: StatusIdle}),
		session:      state.NewHolder(Session{Status: SessionAnonymous}),
		messages:     make(chan string, messageBuffer),
		ctx:          ctx,
		cancel:       cancel,
	}
	c.idle = sync.NewCond(&c.mu)
	c.launch(c.rehydrate)
	return c
}

func (c *Controller) LoginForm() state.Observable[LoginForm] { return c.login }
func (c *Controller) RegisterForm() state.Observable[RegisterForm] { return c.register }
func (c *Controller) PetList() state.Observable[PetList] { return c.pets }
func (c *Controller) AppointmentList() state.Observable[AppointmentList] { return c.appointments }
func (c *Controller) Session() state.Observable[Session] { return c.session }

// Messages delivers one-shot notices such as the welcome message. Each notice
// is received once; notices are dropped when nobody drains the channel.
func (c *Controller) Messages() <-chan string {
	return c.messages
}

// Wait blocks until no operation is in flight.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inFlight > 0 {
		c.idle.Wait()
	}
}

// Close cancels in-flight operations and waits for them to return.
func (c *Controller) Close() {
	c.cancel()
	c.Wait()
}

// launch runs fn on a tracked goroutine. It reports false once the
// controller is closed.
func (c *Controller) launch(fn func(ctx context.Context)) bool {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}
	c.inFlight++
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.inFlight--
			if c.inFlight == 0 {
				c.idle.Broadcast()
			}
			c.mu.Unlock()
		}()
		fn(c.ctx)
	}()
	return true
}

func (c *Controller) emit(msg string) {
	select {
	case c.messages <- msg:
	default:
		c.log.WithField("message", msg).Warn("message channel full, dropping")
	}
}

// ownerID returns the authenticated client's id.
func (c *Controller) ownerID() (int64, bool) {
	s := c.session.Get()
	if s.Status != SessionAuthenticated {
		return 0, false
	}
	return s.ClientID, true
}

// isCurrentOwner reports whether ownerID is still the logged-in client. Results
// of reads started before a logout or a new login are discarded.
func (c *Controller) isCurrentOwner(ownerID int64) bool {
	id, ok := c.ownerID()
	return ok && id == ownerID
}

// rehydrate restores an authenticated session persisted by a previous run.
func (c *Controller) rehydrate(ctx context.Context) {
	snap, err := c.prefs.Snapshot(ctx)
	if err != nil {
		c.log.WithError(err).Warn("failed to read persisted session")
		return
	}
	if !snap.LoggedIn {
		return
	}
	id, err := strconv.ParseInt(snap.UserID, 10, 64)
	if err != nil {
		c.log.WithField("user_id", snap.UserID).Warn("persisted session has no valid user id")
		return
	}

	client, err := c.records.GetClientByID(ctx, id)
	if err != nil {
		c.log.WithError(err).Warn("failed to verify persisted session")
		return
	}
	if client == nil {
		c.log.WithField("client_id", id).Info("persisted client no longer exists, clearing session")
		if err := c.prefs.ClearUserData(ctx); err != nil {
			c.log.WithError(err).Warn("failed to clear stale session")
		}
		return
	}

	// A login that finished first wins.
	restored := false
	c.session.Update(func(s Session) Session {
		if s.Status != SessionAnonymous {
			return s
		}
		restored = true
		return Session{Status: SessionAuthenticated, ClientID: client.ID, Name: client.Name, Email: client.Email}
	})
	if !restored {
		return
	}
	c.login.Update(func(f LoginForm) LoginForm {
		f.CurrentClient = &ClientSummary{ID: client.ID, Name: client.Name, Email: client.Email}
		return f
	})
	c.log.WithField("client_id", client.ID).Info("session restored")

	c.reloadPets(ctx, client.ID, "")
	c.reloadAppointments(ctx, client.ID, "")
}
