package asset_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/explore/asset"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadTexture(t *testing.T) {
	m := asset.NewManager(nil)
	require.NoError(t, m.LoadTexture("jungle", writePNG(t, 320, 96)))

	tex, ok := m.Texture("jungle")
	require.True(t, ok)
	w, h := tex.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 96, h)
	assert.Equal(t, []string{"jungle"}, m.Names())
}

func TestLoadTextureErrors(t *testing.T) {
	m := asset.NewManager(nil)

	err := m.LoadTexture("missing", filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	err = m.LoadTexture("garbage", garbage)
	assert.ErrorContains(t, err, "decode texture garbage")

	_, ok := m.Texture("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestAddTextureReplaces(t *testing.T) {
	m := asset.NewManager(nil)
	m.AddTexture("a", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	m.AddTexture("a", image.NewRGBA(image.Rect(0, 0, 8, 2)))

	tex, ok := m.Texture("a")
	require.True(t, ok)
	w, h := tex.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}
