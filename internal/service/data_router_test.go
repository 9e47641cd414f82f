package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
	"github.com/msoliva/atalaya/atalaya-backend/internal/testutil"
)

func TestNewDataRouter_UnknownInitialSource(t *testing.T) {
	repo := testutil.NewMockBookingRepository()

	_, err := NewDataRouter(repo, nil, SourcePostgres)
	assert.ErrorIs(t, err, domain.ErrUnknownDataSource)

	_, err = NewDataRouter(nil, nil, SourceAirtable)
	assert.ErrorIs(t, err, domain.ErrUnknownDataSource)
}

func TestDataRouter_Toggle(t *testing.T) {
	airtable := testutil.NewMockBookingRepository()
	postgres := testutil.NewMockBookingRepository()

	router, err := NewDataRouter(airtable, postgres, SourceAirtable)
	require.NoError(t, err)
	assert.Equal(t, SourceAirtable, router.CurrentName())

	name, err := router.Toggle()
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, name)
	assert.Same(t, postgres, router.Current())

	name, err = router.Toggle()
	require.NoError(t, err)
	assert.Equal(t, SourceAirtable, name)
}

func TestDataRouter_ToggleWithSingleSource(t *testing.T) {
	airtable := testutil.NewMockBookingRepository()

	router, err := NewDataRouter(airtable, nil, SourceAirtable)
	require.NoError(t, err)

	name, err := router.Toggle()
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	// The active source is unchanged after a failed toggle.
	assert.Equal(t, SourceAirtable, name)
	assert.Equal(t, SourceAirtable, router.CurrentName())
}
