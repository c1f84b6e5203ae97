package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/demo"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/params"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartProfile_UnknownModeReturnsError(t *testing.T) {
	stop, err := startProfile("heap")
	assert.Nil(t, stop)
	assert.ErrorContains(t, err, `unknown profile mode "heap"`)

	stop, err = startProfile("")
	assert.Nil(t, stop)
	assert.NoError(t, err)
}

func TestRenderHeadless_WritesScaledPNG(t *testing.T) {
	hills := geometry.DefaultHillsConfig
	hills.Segments = 8
	r := renderer.NewRenderer(renderer.WithSize(32, 24), renderer.WithWorkers(2))
	d := demo.New(r, params.Default(),
		demo.WithShadowResolution(16),
		demo.WithContactResolution(16),
		demo.WithHills(hills),
	)
	path := filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, renderHeadless(d, 2, path, 0.5))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func TestRenderHeadless_BadPathReturnsError(t *testing.T) {
	r := renderer.NewRenderer(renderer.WithSize(8, 8), renderer.WithWorkers(1))
	hills := geometry.DefaultHillsConfig
	hills.Segments = 4
	d := demo.New(r, params.Default(),
		demo.WithShadowResolution(8),
		demo.WithContactResolution(8),
		demo.WithHills(hills),
	)

	err := renderHeadless(d, 1, filepath.Join(t.TempDir(), "missing", "frame.png"), 1)
	assert.ErrorContains(t, err, "failed to create")
}
