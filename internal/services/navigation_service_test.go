package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/models"
)

func TestNavigationService_Defaults(t *testing.T) {
	nav := NewNavigationService(NewEventService(0, nil))
	st := nav.Current("dev")
	assert.Equal(t, models.ScreenHome, st.Current)
	assert.True(t, st.ShowBottomNav)
}

func TestNavigationService_Navigate(t *testing.T) {
	nav := NewNavigationService(NewEventService(0, nil))

	_, err := nav.Navigate("dev", "settings")
	assert.ErrorIs(t, err, ErrInvalidScreen)

	_, err = nav.Navigate("dev", models.ScreenPayment)
	assert.ErrorIs(t, err, ErrNoEventSelected)
	assert.Equal(t, models.ScreenHome, nav.Current("dev").Current)

	st, err := nav.Navigate("dev", models.ScreenPsychologists)
	require.NoError(t, err)
	assert.False(t, st.ShowBottomNav)
}

func TestNavigationService_SelectAndBack(t *testing.T) {
	nav := NewNavigationService(NewEventService(0, nil))

	_, err := nav.SelectEvent("dev", "42")
	assert.ErrorIs(t, err, ErrEventNotFound)

	st, err := nav.SelectEvent("dev", "2")
	require.NoError(t, err)
	assert.Equal(t, models.ScreenEventDetail, st.Current)
	assert.Equal(t, "2", st.SelectedEvent)

	st, err = nav.Navigate("dev", models.ScreenPayment)
	require.NoError(t, err)
	assert.Equal(t, models.ScreenPayment, st.Current)

	assert.Equal(t, models.ScreenRewards, nav.Back("dev").Current)
	assert.Equal(t, models.ScreenHome, nav.Back("dev").Current)

	// event-detail still steps back to the list
	_, err = nav.Navigate("dev", models.ScreenEventDetail)
	require.NoError(t, err)
	assert.Equal(t, models.ScreenRewards, nav.Back("dev").Current)

	_, err = nav.Navigate("dev", models.ScreenPsychologists)
	require.NoError(t, err)
	assert.Equal(t, models.ScreenProfile, nav.Back("dev").Current)
}
