// Package level describes a playable level: the textures it needs, an
// optional tilemap and the entities to spawn. Levels are written in YAML or
// as a Lua script that assigns the same structure to the global Level.
package level

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Level struct {
	Name     string      `yaml:"name"`
	Assets   Assets      `yaml:"assets"`
	Tilemap  *TilemapDef `yaml:"tilemap"`
	Entities []EntityDef `yaml:"entities"`

	// dir is the directory relative paths are resolved against.
	dir string
}

type Assets struct {
	Textures []TextureDef `yaml:"textures"`
}

type TextureDef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type TilemapDef struct {
	Texture    string  `yaml:"texture"`
	Path       string  `yaml:"path"`
	TileWidth  int     `yaml:"tile_width"`
	TileHeight int     `yaml:"tile_height"`
	Scale      float64 `yaml:"scale"`
}

type EntityDef struct {
	Name       string        `yaml:"name"`
	Tag        string        `yaml:"tag"`
	Group      string        `yaml:"group"`
	Components ComponentDefs `yaml:"components"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ComponentDefs struct {
	Transform         *TransformDef         `yaml:"transform"`
	RigidBody         *RigidBodyDef         `yaml:"rigid_body"`
	Sprite            *SpriteDef            `yaml:"sprite"`
	Animation         *AnimationDef         `yaml:"animation"`
	BoxCollider       *BoxColliderDef       `yaml:"box_collider"`
	KeyboardControl   *KeyboardControlDef   `yaml:"keyboard_control"`
	CameraFollow      bool                  `yaml:"camera_follow"`
	Health            *HealthDef            `yaml:"health"`
	ProjectileEmitter *ProjectileEmitterDef `yaml:"projectile_emitter"`
}

type TransformDef struct {
	Position Vec     `yaml:"position"`
	Scale    *Vec    `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

type RigidBodyDef struct {
	Velocity Vec `yaml:"velocity"`
}

type SpriteDef struct {
	Texture string  `yaml:"texture"`
	Z       int     `yaml:"z"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	SrcX    float64 `yaml:"src_x"`
	SrcY    float64 `yaml:"src_y"`
	Fixed   bool    `yaml:"fixed"`
}

type AnimationDef struct {
	Frames    int   `yaml:"frames"`
	FrameRate int   `yaml:"frame_rate"`
	Loop      *bool `yaml:"loop"`
}

type BoxColliderDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset Vec     `yaml:"offset"`
}

type KeyboardControlDef struct {
	Up    Vec `yaml:"up"`
	Right Vec `yaml:"right"`
	Down  Vec `yaml:"down"`
	Left  Vec `yaml:"left"`
}

type HealthDef struct {
	Max int `yaml:"max"`
}

type ProjectileEmitterDef struct {
	Velocity Vec           `yaml:"velocity"`
	Interval time.Duration `yaml:"interval"`
	Duration time.Duration `yaml:"duration"`
	Damage   int           `yaml:"damage"`
	Friendly bool          `yaml:"friendly"`
}

// Load reads a level from path. Files ending in .lua are run as scripts,
// everything else is parsed as YAML.
func Load(path string) (*Level, error) {
	var (
		lvl *Level
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		lvl, err = loadLua(path)
	default:
		lvl, err = loadYAML(path)
	}
	if err != nil {
		return nil, err
	}
	lvl.dir = filepath.Dir(path)
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

func loadYAML(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML level description.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return &lvl, nil
}

// Validate checks references between the parts of a level.
func (l *Level) Validate() error {
	textures := make(map[string]bool, len(l.Assets.Textures))
	for _, t := range l.Assets.Textures {
		if t.Name == "" || t.Path == "" {
			return fmt.Errorf("texture entries need a name and a path")
		}
		textures[t.Name] = true
	}
	if tm := l.Tilemap; tm != nil {
		if !textures[tm.Texture] {
			return fmt.Errorf("tilemap uses unknown texture %q", tm.Texture)
		}
		if tm.TileWidth <= 0 || tm.TileHeight <= 0 {
			return fmt.Errorf("tilemap tile size %dx%d must be positive", tm.TileWidth, tm.TileHeight)
		}
	}
	tags := make(map[string]string)
	names := make(map[string]bool, len(l.Entities))
	for i, e := range l.Entities {
		if s := e.Components.Sprite; s != nil && !textures[s.Texture] {
			return fmt.Errorf("entity %d (%s) uses unknown texture %q", i, e.Name, s.Texture)
		}
		if e.Name != "" {
			if names[e.Name] {
				return fmt.Errorf("duplicate entity name %q", e.Name)
			}
			names[e.Name] = true
		}
		if e.Tag != "" {
			if prev, ok := tags[e.Tag]; ok {
				return fmt.Errorf("tag %q used by both %q and %q", e.Tag, prev, e.Name)
			}
			tags[e.Tag] = e.Name
		}
	}
	return nil
}

// resolve returns p relative to the level file.
func (l *Level) resolve(p string) string {
	if filepath.IsAbs(p) || l.dir == "" {
		return p
	}
	return filepath.Join(l.dir, p)
}
