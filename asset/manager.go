// Package asset owns the textures used by the game, keyed by name.
package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/explore/gfx"
)

// Texture is a decoded image. The GPU-side ebiten image is created the first
// time it is drawn, so textures can be loaded before the game loop starts.
type Texture struct {
	name string
	src  image.Image
	img  *ebiten.Image
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) Size() (int, int) {
	b := t.src.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the ebiten image for t, creating it on first use.
func (t *Texture) Image() *ebiten.Image {
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// Manager is the single owner of every loaded texture.
type Manager struct {
	log      *zap.Logger
	textures map[string]*Texture
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:      log,
		textures: make(map[string]*Texture),
	}
}

// LoadTexture decodes the image at path and stores it under name, replacing
// any texture already using that name.
func (m *Manager) LoadTexture(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open texture %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode texture %s (%s): %w", name, path, err)
	}
	m.AddTexture(name, img)
	m.log.Debug("texture loaded", zap.String("name", name), zap.String("path", path))
	return nil
}

// AddTexture stores an already decoded image under name.
func (m *Manager) AddTexture(name string, img image.Image) {
	if old, ok := m.textures[name]; ok {
		old.release()
	}
	m.textures[name] = &Texture{name: name, src: img}
}

// Texture implements gfx.TextureProvider.
func (m *Manager) Texture(name string) (gfx.Texture, bool) {
	t, ok := m.textures[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// Names returns the loaded texture names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.textures))
	for name := range m.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded textures.
func (m *Manager) Len() int {
	return len(m.textures)
}

// Close releases every texture. The manager is empty afterwards.
func (m *Manager) Close() error {
	for _, t := range m.textures {
		t.release()
	}
	clear(m.textures)
	return nil
}

func (t *Texture) release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}
