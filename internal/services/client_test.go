package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientCRUD(t *testing.T) {
	conn := newTestDB(t)
	clients := NewClientService(conn)

	created, err := clients.Create(testCtx(), ClientInput{
		Name: "Nordic Timber Oy", BusinessID: "2345678-9", Email: "info@nordictimber.fi",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := clients.Get(testCtx(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Nordic Timber Oy", got.Name)

	phone := "+358 40 1234567"
	updated, err := clients.Update(testCtx(), created.ID, ClientPatch{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)

	_, err = clients.Get(testCtx(), 999)
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientListSearch(t *testing.T) {
	conn := newTestDB(t)
	clients := NewClientService(conn)

	for _, name := range []string{"Alpha Oy", "Beta Ab", "Alphabet Ky"} {
		_, err := clients.Create(testCtx(), ClientInput{Name: name})
		require.NoError(t, err)
	}

	got, total, err := clients.List(testCtx(), "alpha", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	// Ordered by name.
	require.Equal(t, "Alpha Oy", got[0].Name)
	require.Equal(t, "Alphabet Ky", got[1].Name)
}
