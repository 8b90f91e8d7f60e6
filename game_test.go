package zeni

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingState struct {
	name      string
	events    []Event
	logic     int
	renders   int
	renderErr error
	onLogic   func()
	pushes    int
	pops      int
}

func (s *recordingState) OnEvent(ev Event) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingState) PerformLogic() error {
	s.logic++
	if s.onLogic != nil {
		s.onLogic()
	}
	return nil
}

func (s *recordingState) Render() error {
	s.renders++
	return s.renderErr
}

type lifecycleState struct {
	recordingState
}

func (s *lifecycleState) OnPush(*Game) { s.pushes++ }
func (s *lifecycleState) OnPop(*Game)  { s.pops++ }

func TestGame_PopOrderIsLIFO(t *testing.T) {
	g := NewGame()
	a, b, c := &recordingState{name: "A"}, &recordingState{name: "B"}, &recordingState{name: "C"}
	g.PushState(a)
	g.PushState(b)
	g.PushState(c)
	require.Equal(t, 3, g.Size())

	for _, want := range []*recordingState{c, b, a} {
		got, err := g.PopState()
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	_, err := g.PopState()
	assert.ErrorIs(t, err, ErrZeroGamestate)
}

func TestGame_PushLeavesLowerStatesAlone(t *testing.T) {
	g := NewGame()
	a := &recordingState{name: "A"}
	g.PushState(a)
	require.NoError(t, g.PerformLogic())

	b := &recordingState{name: "B"}
	g.PushState(b)
	require.NoError(t, g.PerformLogic())

	assert.Equal(t, 1, a.logic)
	assert.Equal(t, 1, b.logic)
	cur, err := g.CurrentState()
	require.NoError(t, err)
	assert.Same(t, b, cur)
}

func TestGame_EmptyStackFailsWithoutSideEffects(t *testing.T) {
	g := NewGame()
	clock := time.Unix(0, 0)
	g.now = func() time.Time { return clock }

	assert.ErrorIs(t, g.OnEvent(Event{Type: EventQuit}), ErrZeroGamestate)
	assert.ErrorIs(t, g.PerformLogic(), ErrZeroGamestate)
	assert.ErrorIs(t, g.Render(), ErrZeroGamestate)
	_, err := g.CurrentState()
	assert.ErrorIs(t, err, ErrZeroGamestate)

	assert.Equal(t, 0, g.Size())
	assert.Zero(t, g.frames)
	assert.True(t, g.frameStart.IsZero())
	assert.Equal(t, 0, g.FPS())
}

func TestGame_DispatchUsesSnapshot(t *testing.T) {
	g := NewGame()
	base := &recordingState{name: "base"}
	next := &recordingState{name: "next"}
	top := &recordingState{name: "top"}
	top.onLogic = func() {
		// Replace ourselves mid-dispatch.
		_, err := g.PopState()
		require.NoError(t, err)
		g.PushState(next)
	}
	g.PushState(base)
	g.PushState(top)

	require.NoError(t, g.PerformLogic())
	assert.Equal(t, 1, top.logic)
	assert.Equal(t, 0, next.logic)
	assert.Equal(t, 0, base.logic)

	require.NoError(t, g.PerformLogic())
	assert.Equal(t, 1, next.logic)
}

func TestGame_RoutesEventsToTopOnly(t *testing.T) {
	g := NewGame()
	a, b := &recordingState{}, &recordingState{}
	g.PushState(a)
	g.PushState(b)

	ev := Event{Type: EventKeyDown, Key: KeySpace}
	require.NoError(t, g.OnEvent(ev))
	assert.Empty(t, a.events)
	assert.Equal(t, []Event{ev}, b.events)
}

func TestGame_RenderErrorStillCountsFrame(t *testing.T) {
	g := NewGame()
	boom := errors.New("boom")
	s := &recordingState{renderErr: boom}
	g.PushState(s)

	clock := time.Unix(100, 0)
	g.now = func() time.Time { return clock }
	assert.ErrorIs(t, g.Render(), boom)
	clock = clock.Add(10 * time.Millisecond)
	assert.ErrorIs(t, g.Render(), boom)
	assert.Equal(t, 1, g.frames)
}

func TestGame_FPS(t *testing.T) {
	g := NewGame()
	g.PushState(&recordingState{})
	clock := time.Unix(100, 0)
	g.now = func() time.Time { return clock }

	step := 40 * time.Millisecond
	for i := 0; i <= 25; i++ {
		require.NoError(t, g.Render())
		clock = clock.Add(step)
	}
	assert.Equal(t, 25, g.FPS())

	// Half the rate over the next second.
	for i := 0; i < 13; i++ {
		clock = clock.Add(step)
		require.NoError(t, g.Render())
		clock = clock.Add(step)
	}
	assert.InDelta(t, 12.5, g.FPS(), 1)
}

func TestGame_LifecycleHooks(t *testing.T) {
	g := NewGame()
	s := &lifecycleState{}
	g.PushState(s)
	assert.Equal(t, 1, s.pushes)
	_, err := g.PopState()
	require.NoError(t, err)
	assert.Equal(t, 1, s.pops)
}

func TestGame_ConcurrentPushPop(t *testing.T) {
	g := NewGame()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				g.PushState(&recordingState{})
				_, err := g.PopState()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, g.Size())
}
