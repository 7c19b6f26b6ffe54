// Package tilemap turns a CSV grid of tile indices into sprite entities.
//
// Each line of the grid is a row and each comma separated cell is an index
// into the tileset texture, counted left to right, top to bottom. Negative
// cells are empty.
package tilemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

// Group is the registry group every tile entity joins.
const Group = "tiles"

var (
	ErrAlreadyLoaded = errors.New("tilemap already loaded")
	ErrNotLoaded     = errors.New("no tilemap loaded")
	ErrNoColumns     = errors.New("tileset has zero columns")
)

// Grid holds tile indices by row.
type Grid [][]int

// Parse reads a tile grid. Blank lines are ignored.
func Parse(r io.Reader) (Grid, error) {
	var grid Grid
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		cells := strings.Split(text, ",")
		row := make([]int, 0, len(cells))
		for col, cell := range cells {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("tilemap line %d column %d: %w", line, col+1, err)
			}
			row = append(row, v)
		}
		grid = append(grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tilemap: %w", err)
	}
	return grid, nil
}

// Options describe how a grid maps onto a tileset.
type Options struct {
	Name       string
	Texture    string
	TileWidth  int
	TileHeight int
	Scale      float64
}

// Tilemap tracks the entities created for one loaded grid.
type Tilemap struct {
	registry *ecs.Registry
	log      *zap.Logger
	opts     Options

	entities []ecs.Entity
	cols     int
	rows     int
	loaded   bool
}

func New(registry *ecs.Registry, log *zap.Logger, opts Options) *Tilemap {
	if registry == nil {
		panic("tilemap requires a registry")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	return &Tilemap{registry: registry, log: log, opts: opts}
}

// LoadFile reads the grid at path using the tileset texture named in the
// options.
func (m *Tilemap) LoadFile(path string, textures gfx.TextureProvider) error {
	tex, ok := textures.Texture(m.opts.Texture)
	if !ok {
		return fmt.Errorf("tilemap %s: texture %q not loaded", m.opts.Name, m.opts.Texture)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tilemap %s: %w", m.opts.Name, err)
	}
	defer f.Close()

	if err := m.Load(f, tex); err != nil {
		return err
	}
	m.log.Debug("tilemap loaded",
		zap.String("name", m.opts.Name),
		zap.String("path", path),
		zap.Int("cols", m.cols),
		zap.Int("rows", m.rows),
		zap.Int("tiles", len(m.entities)),
	)
	return nil
}

// Load parses a grid from data and creates one entity per non-empty cell,
// cutting tiles out of tileset.
func (m *Tilemap) Load(data io.Reader, tileset gfx.Texture) error {
	if m.loaded {
		return ErrAlreadyLoaded
	}
	if m.opts.TileWidth <= 0 || m.opts.TileHeight <= 0 {
		return fmt.Errorf("tilemap %s: tile size %dx%d: %w", m.opts.Name, m.opts.TileWidth, m.opts.TileHeight, ErrNoColumns)
	}

	texW, _ := tileset.Size()
	tilesetCols := texW / m.opts.TileWidth
	if tilesetCols == 0 {
		return fmt.Errorf("tilemap %s: texture width %d, tile width %d: %w", m.opts.Name, texW, m.opts.TileWidth, ErrNoColumns)
	}

	grid, err := Parse(data)
	if err != nil {
		return fmt.Errorf("tilemap %s: %w", m.opts.Name, err)
	}

	tw, th := float64(m.opts.TileWidth), float64(m.opts.TileHeight)
	scale := m.opts.Scale
	for y, row := range grid {
		for x, index := range row {
			if index < 0 {
				continue
			}
			col, rowInSet := index%tilesetCols, index/tilesetCols

			tile := m.registry.CreateEntity()
			m.registry.AddGroup(tile, Group)
			ecs.AddComponent(m.registry, tile, component.Transform{
				Position: geom.V(float64(x)*tw*scale, float64(y)*th*scale),
				Scale:    geom.V(scale, scale),
			})
			ecs.AddComponent(m.registry, tile, component.NewSprite(
				m.opts.Texture, 0, tw, th, float64(col)*tw, float64(rowInSet)*th,
			))
			m.entities = append(m.entities, tile)
		}
		m.cols = max(m.cols, len(row))
	}
	m.rows = len(grid)
	m.loaded = true
	return nil
}

// Unload kills every tile entity created by Load.
func (m *Tilemap) Unload() error {
	if !m.loaded {
		return ErrNotLoaded
	}
	for _, e := range m.entities {
		m.registry.KillEntity(e)
	}
	m.entities = nil
	m.cols, m.rows = 0, 0
	m.loaded = false
	m.log.Debug("tilemap unloaded", zap.String("name", m.opts.Name))
	return nil
}

func (m *Tilemap) Loaded() bool {
	return m.loaded
}

// Entities returns the tile entities in grid order.
func (m *Tilemap) Entities() []ecs.Entity {
	return m.entities
}

// Size returns the grid size in tiles.
func (m *Tilemap) Size() (cols, rows int) {
	return m.cols, m.rows
}

// WorldSize returns the map size in world units.
func (m *Tilemap) WorldSize() (w, h float64) {
	return float64(m.cols*m.opts.TileWidth) * m.opts.Scale,
		float64(m.rows*m.opts.TileHeight) * m.opts.Scale
}
