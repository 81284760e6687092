package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vethome/internal/controller"
	"vethome/internal/database"
	"vethome/internal/handlers"
	"vethome/internal/logger"
	"vethome/internal/middleware"
	"vethome/internal/preferences"
	"vethome/internal/repositories"
	"vethome/internal/services"
)

// setupApp wires a Fiber app over an in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *services.RecordStore) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.NewDiscard()
	store := services.NewRecordStore(
		repositories.NewGORMClientRepository(db),
		repositories.NewGORMPetRepository(db),
		repositories.NewGORMAppointmentRepository(db),
		nil, // no RabbitMQ client
		log,
	)
	prefs := preferences.NewStore(preferences.NewGORMBackend(repositories.NewGORMPreferenceRepository(db)), log)
	ctrl := controller.New(store, prefs, log)
	t.Cleanup(ctrl.Close)
	ctrl.Wait()

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewSessionHandler(ctrl).RegisterRoutes(apiV1)
	protected := apiV1.Group("", middleware.SessionRequired(ctrl))
	handlers.NewPetHandler(ctrl).RegisterRoutes(protected)
	handlers.NewAppointmentHandler(ctrl).RegisterRoutes(protected)
	return app, store
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func register(t *testing.T, app *fiber.App, email string) *http.Response {
	t.Helper()
	resp, _ := request(t, app, http.MethodPut, "/api/v1/register/form", map[string]string{
		"name":    "Ana Ruiz",
		"email":   email,
		"phone":   "12345678",
		"pass":    "Abcdef1!",
		"confirm": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = request(t, app, http.MethodPost, "/api/v1/register", nil)
	return resp
}

func login(t *testing.T, app *fiber.App, email, pass string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, _ := request(t, app, http.MethodPut, "/api/v1/login/form", map[string]string{"email": email, "pass": pass})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return request(t, app, http.MethodPost, "/api/v1/login", nil)
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp := register(t, app, "ana@x.cl")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = register(t, app, "ana@x.cl")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := login(t, app, "ana@x.cl", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	form := body["form"].(map[string]interface{})
	assert.Equal(t, "Invalid credentials", form["errorMsg"])

	resp, body = login(t, app, "ana@x.cl", "Abcdef1!")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	session := body["session"].(map[string]interface{})
	assert.Equal(t, "authenticated", session["status"])
	assert.Equal(t, float64(1), session["clientId"])

	resp, body = request(t, app, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana Ruiz", body["name"])

	resp, body = login(t, app, "ana@x.cl", "Wrong123!")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Already logged in", body["message"])
	session = body["session"].(map[string]interface{})
	assert.Equal(t, "authenticated", session["status"])
}

func TestLoginFormIncomplete(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := request(t, app, http.MethodPut, "/api/v1/login/form", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invalid email format", body["emailError"])

	resp, _ = request(t, app, http.MethodPost, "/api/v1/login", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/api/v1/pets", "/api/v1/appointments"} {
		resp, body := request(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Login required", body["message"])
	}
}

func TestPetEndpoints(t *testing.T) {
	app, store := setupApp(t)
	register(t, app, "ana@x.cl")
	login(t, app, "ana@x.cl", "Abcdef1!")

	resp, body := request(t, app, http.MethodPost, "/api/v1/pets", map[string]string{
		"name": "Toby", "species": "Dog", "breed": "Beagle", "weight": "12",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pets := body["pets"].([]interface{})
	require.Len(t, pets, 1)
	petID := int64(pets[0].(map[string]interface{})["id"].(float64))

	resp, body = request(t, app, http.MethodPost, "/api/v1/pets", map[string]string{
		"name": "Rex", "species": "Dragon", "breed": "Boxer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Select a valid species", body["error"])

	resp, _ = request(t, app, http.MethodPatch, "/api/v1/pets/abc/weight", map[string]float64{"weight": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = request(t, app, http.MethodPatch, "/api/v1/pets/1/weight", map[string]float64{"weight": 13.5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pets = body["pets"].([]interface{})
	assert.Equal(t, 13.5, pets[0].(map[string]interface{})["weight"])

	resp, _ = request(t, app, http.MethodDelete, "/api/v1/pets/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	remaining, err := store.GetPetsByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	resp, body = request(t, app, http.MethodDelete, "/api/v1/pets/1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Pet not found", body["error"])
	assert.Equal(t, int64(1), petID)
}

func TestAppointmentEndpoints(t *testing.T) {
	app, store := setupApp(t)
	register(t, app, "ana@x.cl")
	petID, err := store.AddPet(context.Background(), services.AddPetInput{OwnerID: 1, Name: "Toby", Species: "Dog", Breed: "Beagle"})
	require.NoError(t, err)
	login(t, app, "ana@x.cl", "Abcdef1!")

	resp, body := request(t, app, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"petId": petID, "date": "2026-11-02", "time": "10:30", "service": "Vaccination",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appointments := body["appointments"].([]interface{})
	require.Len(t, appointments, 1)
	assert.Equal(t, "pending", appointments[0].(map[string]interface{})["status"])

	resp, _ = request(t, app, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"date": "2026-11-02", "time": "10:30", "service": "Vaccination",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "petId is required")

	resp, _ = request(t, app, http.MethodPatch, "/api/v1/appointments/1/status", map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = request(t, app, http.MethodPatch, "/api/v1/appointments/1/status", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	appointments = body["appointments"].([]interface{})
	assert.Equal(t, "completed", appointments[0].(map[string]interface{})["status"])
}

func TestMessagesAndLogout(t *testing.T) {
	app, _ := setupApp(t)
	register(t, app, "ana@x.cl")
	login(t, app, "ana@x.cl", "Abcdef1!")

	request(t, app, http.MethodPost, "/api/v1/logout", nil)

	_, body := request(t, app, http.MethodGet, "/api/v1/messages", nil)
	assert.Equal(t, []interface{}{"Welcome, Ana Ruiz!", "Session closed"}, body["messages"])

	_, body = request(t, app, http.MethodGet, "/api/v1/messages", nil)
	assert.Empty(t, body["messages"])

	resp, _ := request(t, app, http.MethodGet, "/api/v1/pets", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
