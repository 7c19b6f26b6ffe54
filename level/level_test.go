package level_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
	"github.com/plus3/explore/level"
	"github.com/plus3/explore/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }

// fakeAssets records texture loads without touching the file system.
type fakeAssets struct {
	loaded map[string]string
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{loaded: make(map[string]string)}
}

func (a *fakeAssets) LoadTexture(name, path string) error {
	a.loaded[name] = path
	return nil
}

func (a *fakeAssets) Texture(name string) (gfx.Texture, bool) {
	if _, ok := a.loaded[name]; !ok {
		return nil, false
	}
	return fakeTexture{w: 320, h: 96}, true
}

func TestLoadYAML(t *testing.T) {
	lvl, err := level.Load("testdata/arena.yaml")
	require.NoError(t, err)

	assert.Equal(t, "arena", lvl.Name)
	require.Len(t, lvl.Assets.Textures, 3)
	require.NotNil(t, lvl.Tilemap)
	assert.Equal(t, 32, lvl.Tilemap.TileWidth)
	assert.Equal(t, 2.0, lvl.Tilemap.Scale)

	require.Len(t, lvl.Entities, 2)
	chopper := lvl.Entities[0]
	assert.Equal(t, "player", chopper.Tag)
	assert.True(t, chopper.Components.CameraFollow)
	require.NotNil(t, chopper.Components.ProjectileEmitter)
	assert.Equal(t, 10*time.Second, chopper.Components.ProjectileEmitter.Duration)
	assert.Zero(t, chopper.Components.ProjectileEmitter.Interval)

	tank := lvl.Entities[1]
	assert.Equal(t, "enemies", tank.Group)
	assert.Equal(t, time.Second, tank.Components.ProjectileEmitter.Interval)
	assert.Nil(t, tank.Components.KeyboardControl)
}

func TestLoadLua(t *testing.T) {
	lvl, err := level.Load("testdata/arena.lua")
	require.NoError(t, err)

	assert.Equal(t, "arena-lua", lvl.Name)
	assert.Nil(t, lvl.Tilemap)
	require.Len(t, lvl.Entities, 4)

	assert.Equal(t, "chopper", lvl.Entities[0].Name)
	assert.Equal(t, 15, lvl.Entities[0].Components.Animation.FrameRate)
	for i, e := range lvl.Entities[1:] {
		assert.Equal(t, "enemies", e.Group)
		assert.Equal(t, float64(100*(i+1)), e.Components.Transform.Position.X)
		assert.Equal(t, time.Second, e.Components.ProjectileEmitter.Interval)
	}
}

func TestLoadLuaWithoutLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.lua")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	_, err := level.Load(path)
	assert.ErrorContains(t, err, "global Level is not a table")
}

func TestLoadLuaHasNoFileAccess(t *testing.T) {
	for _, script := range []string{
		`io.open("/etc/passwd")`,
		`os.exit(1)`,
		`dofile("/etc/passwd")`,
		`require("os")`,
	} {
		path := filepath.Join(t.TempDir(), "escape.lua")
		require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

		_, err := level.Load(path)
		assert.Error(t, err, script)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := level.Load("testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = level.Parse([]byte("entities: {"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown sprite texture",
			yaml: `
entities:
  - name: ghost
    components:
      sprite: {texture: nope}
`,
			want: `unknown texture "nope"`,
		},
		{
			name: "unknown tilemap texture",
			yaml: `
tilemap: {texture: nope, path: x.map, tile_width: 32, tile_height: 32}
`,
			want: "tilemap uses unknown texture",
		},
		{
			name: "bad tile size",
			yaml: `
assets:
  textures: [{name: t, path: t.png}]
tilemap: {texture: t, path: x.map, tile_width: 0, tile_height: 32}
`,
			want: "must be positive",
		},
		{
			name: "duplicate tag",
			yaml: `
entities:
  - {name: a, tag: player}
  - {name: b, tag: player}
`,
			want: `tag "player" used by both`,
		},
		{
			name: "duplicate entity name",
			yaml: `
entities:
  - {name: tank}
  - {name: tank}
`,
			want: `duplicate entity name "tank"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := level.Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.ErrorContains(t, lvl.Validate(), tt.want)
		})
	}
}

func TestSpawn(t *testing.T) {
	lvl, err := level.Load("testdata/arena.yaml")
	require.NoError(t, err)

	r := ecs.NewRegistry()
	assets := newFakeAssets()
	now := 3 * time.Second

	world, err := lvl.Spawn(r, assets, zaptest.NewLogger(t), now)
	require.NoError(t, err)
	r.Update()

	assert.Equal(t, filepath.Join("testdata", "tiles", "jungle.png"), assets.loaded["jungle"])
	assert.Len(t, assets.loaded, 3)

	require.NotNil(t, world.Tilemap)
	assert.Len(t, world.Tilemap.Entities(), 5)
	assert.Equal(t, 5, r.GroupSize(tilemap.Group))
	assert.Equal(t, 3*32*2.0, world.Width)
	assert.Equal(t, 2*32*2.0, world.Height)

	chopper, ok := r.GetByTag("player")
	require.True(t, ok)
	assert.Equal(t, world.Entities["chopper"], chopper)
	assert.Equal(t, "chopper", r.EntityName(chopper))

	tr := ecs.GetComponent[component.Transform](r, chopper)
	assert.Equal(t, geom.V(10, 100), tr.Position)
	assert.Equal(t, geom.V(1, 1), tr.Scale)
	assert.True(t, ecs.HasComponent[component.CameraFollow](r, chopper))
	assert.True(t, ecs.HasComponent[component.KeyboardControl](r, chopper))

	anim := ecs.GetComponent[component.Animation](r, chopper)
	assert.True(t, anim.Loop)
	assert.Equal(t, now, anim.StartTime)

	sprite := ecs.GetComponent[component.Sprite](r, chopper)
	assert.Equal(t, geom.R(0, 0, 32, 32), sprite.Src)

	tank := world.Entities["tank"]
	assert.Equal(t, []ecs.Entity{tank}, r.GetByGroup("enemies"))
	assert.Equal(t, component.NewHealth(30), *ecs.GetComponent[component.Health](r, tank))
	emitter := ecs.GetComponent[component.ProjectileEmitter](r, tank)
	assert.Equal(t, now, emitter.LastEmission)
	assert.False(t, ecs.HasComponent[component.RigidBody](r, tank))
}

func TestSpawnMissingTilemap(t *testing.T) {
	lvl, err := level.Parse([]byte(`
assets:
  textures: [{name: t, path: t.png}]
tilemap: {texture: t, path: nowhere.map, tile_width: 32, tile_height: 32}
`))
	require.NoError(t, err)

	_, err = lvl.Spawn(ecs.NewRegistry(), newFakeAssets(), nil, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpawnInvalidLevelCreatesNothing(t *testing.T) {
	lvl, err := level.Parse([]byte(`
name: twins
assets:
  textures: [{name: t, path: t.png}]
tilemap: {texture: t, path: nowhere.map, tile_width: 32, tile_height: 32}
entities:
  - {name: tank, components: {transform: {position: {x: 1, y: 1}}}}
  - {name: tank, components: {transform: {position: {x: 2, y: 2}}}}
`))
	require.NoError(t, err)

	r := ecs.NewRegistry()
	assets := newFakeAssets()
	world, err := lvl.Spawn(r, assets, nil, 0)

	assert.ErrorContains(t, err, `level twins: duplicate entity name "tank"`)
	assert.Nil(t, world)
	assert.Zero(t, r.EntityCount())
	assert.Zero(t, r.PendingCount())
	assert.Empty(t, assets.loaded)
}

func TestShippedLevels(t *testing.T) {
	for _, path := range []string{"../assets/levels/level1.yaml", "../assets/levels/level2.lua"} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			lvl, err := level.Load(path)
			require.NoError(t, err)

			assets := newFakeAssets()
			r := ecs.NewRegistry()
			world, err := lvl.Spawn(r, assets, nil, 0)
			require.NoError(t, err)

			for name, p := range assets.loaded {
				_, err := os.Stat(p)
				assert.NoError(t, err, "texture %s", name)
			}
			_, ok := r.GetByTag("player")
			assert.True(t, ok)
			assert.NotZero(t, r.GroupSize("enemies"))
			assert.Positive(t, world.Width)
		})
	}
}
