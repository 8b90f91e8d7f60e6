//go:build headless

package zeni

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessApp_RunsUntilStackEmpties(t *testing.T) {
	a := NewApp(testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	s := &recordingState{}
	s.onLogic = func() {
		if s.logic == 3 {
			_, _ = a.Game().PopState()
		}
	}
	a.Game().PushState(s)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, s.logic)
	assert.Equal(t, 2, s.renders)
}

func TestHeadlessApp_StopsOnCancel(t *testing.T) {
	a := NewApp(testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)
	a.Game().PushState(&recordingState{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Run(ctx))
}

func TestHeadlessApp_RunBeforeInit(t *testing.T) {
	a := NewApp(testAppConfig())
	assert.ErrorIs(t, a.Run(context.Background()), ErrVideoInit)
}
