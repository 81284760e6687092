package services_test

import (
	"context"
	"testing"

	"vethome/internal/database"
	"vethome/internal/logger"
	"vethome/internal/repositories"
	"vethome/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore wires a RecordStore over a private in-memory SQLite database.
func setupStore(t *testing.T) *services.RecordStore {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return services.NewRecordStore(
		repositories.NewGORMClientRepository(db),
		repositories.NewGORMPetRepository(db),
		repositories.NewGORMAppointmentRepository(db),
		nil, // no event publisher
		logger.NewDiscard(),
	)
}

func register(t *testing.T, store *services.RecordStore, name, email string) int64 {
	t.Helper()
	id, err := store.Register(context.Background(), services.RegisterInput{
		Name: name, Email: email, Phone: "12345678", Password: "Abcdef1!",
	})
	require.NoError(t, err)
	return id
}

func TestRecordStore_RegisterLoginScenario(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id := register(t, store, "Ana Ruiz", "ana@x.cl")
	assert.Equal(t, int64(1), id)

	client, err := store.Login(ctx, "ana@x.cl", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), client.ID)
	assert.Equal(t, "ana@x.cl", client.Email)

	_, err = store.Login(ctx, "ana@x.cl", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Email match is exact.
	_, err = store.Login(ctx, "ANA@x.cl", "Abcdef1!")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRecordStore_DuplicateRegistrationLeavesCountUnchanged(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	register(t, store, "Ana Ruiz", "ana@x.cl")
	before, err := store.CountAllClients(ctx)
	require.NoError(t, err)

	_, err = store.Register(ctx, services.RegisterInput{
		Name: "Ana Otra", Email: "ana@x.cl", Phone: "87654321", Password: "Zyxwvu9?",
	})
	assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)

	after, err := store.CountAllClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecordStore_PetScenario(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	owner := register(t, store, "Ana Ruiz", "ana@x.cl")

	w := 25.5
	petID, err := store.AddPet(ctx, services.AddPetInput{OwnerID: owner, Name: "Rex", Species: "Dog", Breed: "Labrador", Weight: &w})
	require.NoError(t, err)

	pets, err := store.GetPetsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Rex", pets[0].Name)
	require.NotNil(t, pets[0].Weight)
	assert.Equal(t, 25.5, *pets[0].Weight)

	require.NoError(t, store.UpdatePetWeight(ctx, petID, 26.0))
	pets, err = store.GetPetsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 26.0, *pets[0].Weight)

	n, err := store.CountPetsForOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.DeletePet(ctx, petID))
	pets, err = store.GetPetsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestRecordStore_AddPetForMissingOwner(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.AddPet(ctx, services.AddPetInput{OwnerID: 42, Name: "Rex", Species: "Dog", Breed: "Labrador"})
	assert.ErrorIs(t, err, services.ErrOwnerNotFound)

	total, err := store.CountAllPets(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRecordStore_DeleteClientCascades(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	ana := register(t, store, "Ana Ruiz", "ana@x.cl")
	bea := register(t, store, "Bea Soto", "bea@x.cl")

	for _, name := range []string{"Rex", "Luna"} {
		_, err := store.AddPet(ctx, services.AddPetInput{OwnerID: ana, Name: name, Species: "Dog", Breed: "Mixed"})
		require.NoError(t, err)
	}
	_, err := store.AddPet(ctx, services.AddPetInput{OwnerID: bea, Name: "Michi", Species: "Cat", Breed: "Siamese"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteClient(ctx, ana))

	client, err := store.GetClientByID(ctx, ana)
	require.NoError(t, err)
	assert.Nil(t, client)

	n, err := store.CountPetsForOwner(ctx, ana)
	require.NoError(t, err)
	assert.Zero(t, n)
	total, err := store.CountAllPets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	assert.ErrorIs(t, store.DeleteClient(ctx, ana), services.ErrOwnerNotFound)
}

func TestRecordStore_Appointments(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	ana := register(t, store, "Ana Ruiz", "ana@x.cl")
	bea := register(t, store, "Bea Soto", "bea@x.cl")
	rex, err := store.AddPet(ctx, services.AddPetInput{OwnerID: ana, Name: "Rex", Species: "Dog", Breed: "Labrador"})
	require.NoError(t, err)

	_, err = store.ScheduleAppointment(ctx, services.ScheduleInput{OwnerID: bea, PetID: rex, Date: "2024-01-15", Time: "10:00", Service: "Vaccination"})
	assert.ErrorIs(t, err, services.ErrPetNotFound)

	id, err := store.ScheduleAppointment(ctx, services.ScheduleInput{OwnerID: ana, PetID: rex, Date: "2024-01-15", Time: "10:00", Service: "Vaccination"})
	require.NoError(t, err)

	list, err := store.GetAppointmentsByOwner(ctx, ana)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0].Status)

	require.NoError(t, store.UpdateAppointmentStatus(ctx, id, "confirmed"))
	list, err = store.GetAppointmentsByOwner(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", list[0].Status)

	// Deleting the pet removes its appointments.
	require.NoError(t, store.DeletePet(ctx, rex))
	list, err = store.GetAppointmentsByOwner(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordStore_SeedDemoData(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDemoData(ctx))
	require.NoError(t, store.SeedDemoData(ctx)) // second run is a no-op

	n, err := store.CountAllClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	admin, err := store.Login(ctx, "admin@vethome.cl", "Admin123!")
	require.NoError(t, err)
	pets, err := store.GetPetsByOwner(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "Firulais", pets[0].Name)
	assert.Equal(t, "Michi", pets[1].Name)
}
