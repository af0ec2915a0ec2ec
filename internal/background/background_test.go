package background_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/neural-background/internal/background"
	"github.com/iburimskiy/neural-background/internal/config"
	"github.com/iburimskiy/neural-background/internal/hosttest"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 1
	return cfg
}

func mount(t *testing.T, h *hosttest.Host, cfg config.Config) *background.Background {
	t.Helper()
	b, err := background.Mount(h, cfg, background.Options{})
	require.NoError(t, err)
	return b
}

func TestMount_RunsLoop(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	b := mount(t, h, testConfig())
	defer b.Unmount()

	require.Equal(t, 1, h.PointerListeners())
	require.Equal(t, 1, h.ResizeListeners())
	require.NotNil(t, h.Attached())

	for i := 0; i < 5; i++ {
		require.Equal(t, 1, h.Tick(), "tick %d", i)
	}
	s := h.Attached()
	assert.Equal(t, 5, s.Draws)
	assert.Equal(t, 5, b.Renderer().Ticks())
	assert.NotEmpty(t, s.Last.Dots)
	assert.LessOrEqual(t, len(s.Last.Dots), 350)
	assert.LessOrEqual(t, len(s.Last.Segments), 600)
}

// TestMount_ImmediateUnmount checks that a layer torn down before its first
// frame never draws and leaves nothing registered.
func TestMount_ImmediateUnmount(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	b := mount(t, h, testConfig())
	b.Unmount()

	assert.Zero(t, h.Tick())
	assert.Zero(t, h.PendingFrames())
	assert.Zero(t, h.PointerListeners())
	assert.Zero(t, h.ResizeListeners())
	assert.Nil(t, h.Attached())

	require.Len(t, h.Surfaces(), 1)
	s := h.Surfaces()[0]
	assert.True(t, s.Released)
	assert.Zero(t, s.Draws)
	assert.False(t, b.Renderer().Alive())
}

func TestUnmount_StopsTicks(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	b := mount(t, h, testConfig())
	h.Tick()
	h.Tick()
	b.Unmount()
	b.Unmount()

	for i := 0; i < 3; i++ {
		assert.Zero(t, h.Tick())
	}
	s := h.Surfaces()[0]
	assert.Equal(t, 2, s.Draws)
	assert.Zero(t, s.DrawsAfterRelease)
	assert.Equal(t, 2, h.Removals())
}

// TestMount_RepeatedCycles mounts and unmounts many times on one host and
// checks that listeners and surfaces never accumulate.
func TestMount_RepeatedCycles(t *testing.T) {
	h := hosttest.New(1024, 768, 2)
	for cycle := 0; cycle < 10; cycle++ {
		b := mount(t, h, testConfig())
		require.Equal(t, 1, h.PointerListeners(), "cycle %d", cycle)
		require.Equal(t, 1, h.ResizeListeners(), "cycle %d", cycle)
		h.Tick()
		b.Unmount()
		require.Zero(t, h.PointerListeners(), "cycle %d", cycle)
		require.Zero(t, h.ResizeListeners(), "cycle %d", cycle)
		require.Zero(t, h.PendingFrames(), "cycle %d", cycle)
	}
	require.Len(t, h.Surfaces(), 10)
	for i, s := range h.Surfaces() {
		assert.True(t, s.Released, "surface %d", i)
		assert.Equal(t, 1, s.Draws, "surface %d", i)
	}
	assert.Equal(t, 20, h.Removals())
}

func TestMount_NoContext(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	h.FailSurface = errors.New("webgl unavailable")

	b, err := background.Mount(h, testConfig(), background.Options{})
	require.ErrorIs(t, err, background.ErrNoContext)
	assert.Nil(t, b)
	assert.Zero(t, h.PointerListeners())
	assert.Zero(t, h.ResizeListeners())
	assert.Zero(t, h.PendingFrames())
	assert.Nil(t, h.Attached())
}

// TestMount_Occupied checks that a second layer on the same host fails,
// releases its own surface and leaves the first layer running.
func TestMount_Occupied(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	first := mount(t, h, testConfig())
	defer first.Unmount()

	second, err := background.Mount(h, testConfig(), background.Options{})
	require.ErrorIs(t, err, background.ErrMounted)
	assert.Nil(t, second)

	require.Len(t, h.Surfaces(), 2)
	assert.True(t, h.Surfaces()[1].Released)
	assert.False(t, h.Surfaces()[0].Released)
	assert.Same(t, h.Surfaces()[0], h.Attached())
	assert.Equal(t, 1, h.PointerListeners())
	assert.Equal(t, 1, h.Tick())
}

func TestMount_InvalidConfig(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	cfg := testConfig()
	cfg.Smoothing = 1

	_, err := background.Mount(h, cfg, background.Options{})
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Empty(t, h.Surfaces())
}

func TestMount_EmptyField(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	cfg := testConfig()
	cfg.ParticleCount = 0
	b := mount(t, h, cfg)
	defer b.Unmount()

	for i := 0; i < 3; i++ {
		require.Equal(t, 1, h.Tick())
	}
	s := h.Attached()
	assert.Equal(t, 3, s.Draws)
	assert.Empty(t, s.Last.Dots)
	assert.Empty(t, s.Last.Segments)
}

// TestMount_EdgeCap packs every particle into a tiny cube so that every
// pair qualifies, and checks that frames carry exactly the cap.
func TestMount_EdgeCap(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	cfg := testConfig()
	cfg.ParticleCount = 40
	cfg.BoundsX, cfg.BoundsY, cfg.BoundsZ = 1, 1, 1
	cfg.MaxEdges = 10
	b := mount(t, h, cfg)
	defer b.Unmount()

	h.Tick()
	assert.Len(t, h.Attached().Last.Segments, 10)
	assert.Len(t, h.Attached().Last.Dots, 40)
}

// TestResize_UpdatesProjection checks that projection and surface size
// follow a resize before the next frame is drawn.
func TestResize_UpdatesProjection(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	b := mount(t, h, testConfig())
	defer b.Unmount()
	h.Tick()

	h.Resize(600, 900, 1)
	assert.InDelta(t, 600.0/900.0, b.Renderer().Camera().Aspect(), 1e-12)
	s := h.Attached()
	assert.Equal(t, 600, s.Width)
	assert.Equal(t, 900, s.Height)

	h.Tick()
	assert.Equal(t, [2]int{600, 900}, s.DrawSizes[len(s.DrawSizes)-1])
	assert.Equal(t, [2]int{800, 600}, s.DrawSizes[0])
}

func TestMount_CapsPixelRatio(t *testing.T) {
	h := hosttest.New(800, 600, 3)
	b := mount(t, h, testConfig())
	defer b.Unmount()

	s := h.Attached()
	assert.Equal(t, 1600, s.Width)
	assert.Equal(t, 1200, s.Height)

	h.Resize(400, 300, 1.5)
	assert.Equal(t, 600, s.Width)
	assert.Equal(t, 450, s.Height)

	h.Tick()
	assert.InDelta(t, 1.5, s.Last.PixelRatio, 1e-12)
}

func TestPointer_DrivesPitch(t *testing.T) {
	h := hosttest.New(800, 600, 1)
	b := mount(t, h, testConfig())
	defer b.Unmount()

	h.MovePointer(400, 300)
	h.Tick()
	assert.Zero(t, b.Rotation().State().TargetX)

	h.MovePointer(400, 600)
	h.Tick()
	// (600-300) * 0.0005 * 0.5
	assert.InDelta(t, 0.075, b.Rotation().State().TargetX, 1e-12)
	assert.Greater(t, b.Rotation().State().CurrentX, 0.0)
}

func TestMount_Logs(t *testing.T) {
	var buf bytes.Buffer
	h := hosttest.New(800, 600, 1)
	b, err := background.Mount(h, testConfig(), background.Options{Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)
	b.Unmount()

	assert.Contains(t, buf.String(), "background mounted: 350 particles, surface 800x600")
	assert.Contains(t, buf.String(), "background unmounted after 0 frames")
}
