package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-test-user-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		people := 2
		price := 280.0
		intent := domain.Intent{Name: "buchen", Kind: domain.IntentBook, Response: "ok"}

		sess := domain.NewSession(userID)
		sess.Intent = &intent
		sess.Entities = domain.Entities{Services: []string{"wifi"}, People: &people}
		sess.State = domain.SessionState{
			Step:          domain.StepConfirmBooking,
			Accommodation: &domain.Accommodation{Name: "Hotel Adler", Country: "Deutschland", City: "Berlin", Price: 120, Services: []string{"wifi"}},
			Country:       "Deutschland",
			City:          "Berlin",
			Services:      []string{"wifi", "frühstück"},
			People:        &people,
			TotalPrice:    &price,
		}

		err := store.Save(ctx, userID, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, userID, loaded.UserID)
		assert.Equal(t, domain.StepConfirmBooking, loaded.State.Step)
		require.NotNil(t, loaded.State.Accommodation)
		assert.Equal(t, "Hotel Adler", loaded.State.Accommodation.Name)
		assert.Equal(t, []string{"wifi", "frühstück"}, loaded.State.Services)
		require.NotNil(t, loaded.State.TotalPrice)
		assert.Equal(t, 280.0, *loaded.State.TotalPrice)
		require.NotNil(t, loaded.Intent)
		assert.Equal(t, domain.IntentBook, loaded.Intent.Kind)
	})

	t.Run("Load Is Isolated From Caller", func(t *testing.T) {
		sess := domain.NewSession(userID)
		sess.State.Services = []string{"wifi"}
		require.NoError(t, store.Save(ctx, userID, sess))

		sess.State.Services[0] = "mutated"

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"wifi"}, loaded.State.Services)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, userID, domain.NewSession(userID))
		require.NoError(t, err)

		err = store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, userID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1))
		_ = store.Save(ctx, id2, domain.NewSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, users, id1)
		assert.Contains(t, users, id2)
	})
}
