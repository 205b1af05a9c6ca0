package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppState_Advance(t *testing.T) {
	s := NewAppState()
	require.NoError(t, s.Advance(PhaseRestoringSession))
	require.NoError(t, s.Advance(PhaseLoadingConfig))
	require.NoError(t, s.Advance(PhaseLoadingEmployeeData))
	require.NoError(t, s.Advance(PhaseReady))
	assert.True(t, s.Ready())

	err := s.Advance(PhaseLoadingConfig)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseReady, s.Phase)
}

func TestAppState_SkipsAreRejected(t *testing.T) {
	s := NewAppState()
	assert.ErrorIs(t, s.Advance(PhaseLoadingConfig), ErrInvalidTransition)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestAppState_Fail(t *testing.T) {
	s := NewAppState()
	require.NoError(t, s.Advance(PhaseRestoringSession))

	boom := errors.New("boom")
	assert.Same(t, boom, s.Fail(boom))
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "boom", s.Error)
	assert.False(t, s.Ready())
}
