package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProfileID = "aa26f1cd-0a0a-4a43-92ed-44ab2f04e7f0"

func TestCreateAndGetByRawToken(t *testing.T) {
	driver, err := New()
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	rawToken, err := driver.Create(context.Background(), testProfileID, expires)
	require.NoError(t, err)
	require.NotEmpty(t, rawToken)

	obj, err := driver.GetByRawToken(context.Background(), rawToken)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, testProfileID, obj.ProfileID)
	assert.Equal(t, expires, obj.Expires)
	// Only the hash is stored
	assert.NotEqual(t, rawToken, obj.Token)

	unknown, err := driver.GetByRawToken(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestTerminateByRawToken(t *testing.T) {
	driver, err := New()
	require.NoError(t, err)

	rawToken, err := driver.Create(context.Background(), testProfileID, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	require.NoError(t, driver.TerminateByRawToken(context.Background(), rawToken))

	obj, err := driver.GetByRawToken(context.Background(), rawToken)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestTerminateByProfileID(t *testing.T) {
	driver, err := New()
	require.NoError(t, err)

	first, err := driver.Create(context.Background(), testProfileID, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)
	second, err := driver.Create(context.Background(), testProfileID, time.Now().Add(2*time.Hour).Unix())
	require.NoError(t, err)
	foreign, err := driver.Create(context.Background(), "2da0a0ee-3f1c-47a8-b176-9265a0f7dfdb", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	require.NoError(t, driver.TerminateByProfileID(context.Background(), testProfileID))

	for _, rawToken := range []string{first, second} {
		obj, err := driver.GetByRawToken(context.Background(), rawToken)
		require.NoError(t, err)
		assert.Nil(t, obj)
	}
	obj, err := driver.GetByRawToken(context.Background(), foreign)
	require.NoError(t, err)
	assert.NotNil(t, obj)
}

func TestTerminateExpired(t *testing.T) {
	driver, err := New()
	require.NoError(t, err)

	expired, err := driver.Create(context.Background(), testProfileID, time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)
	active, err := driver.Create(context.Background(), testProfileID, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	terminated, err := driver.TerminateExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, terminated)

	obj, err := driver.GetByRawToken(context.Background(), expired)
	require.NoError(t, err)
	assert.Nil(t, obj)
	obj, err = driver.GetByRawToken(context.Background(), active)
	require.NoError(t, err)
	assert.NotNil(t, obj)
}
