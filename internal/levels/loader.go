// Package levels loads level maps from files and generates them when no
// file exists. This package depends on engine but engine does not depend
// on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels/formats"
)

//go:embed data/*.yaml
var embedded embed.FS

// DefaultTileSize is used for files that do not set tile_size.
const DefaultTileSize = 64

// ErrInvalid is wrapped by errors for level files that parse but cannot be played.
var ErrInvalid = errors.New("invalid level")

// MapName returns the asset name for a level number, e.g. Level_07.
func MapName(n int) string {
	return fmt.Sprintf("Level_%02d", n)
}

// ParseMapName extracts the level number from a file or asset name.
func ParseMapName(name string) (int, bool) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	digits, ok := strings.CutPrefix(base, "Level_")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Info summarizes a level file.
type Info struct {
	Number  int
	Name    string
	File    string
	Width   int
	Height  int
	Items   int
	Hazards int
	Err     error
}

// Loader reads level files from a file system.
type Loader struct {
	fsys fs.FS
	desc string
}

// NewLoader creates a loader over an arbitrary file system.
func NewLoader(fsys fs.FS, desc string) *Loader {
	return &Loader{fsys: fsys, desc: desc}
}

// NewDirLoader creates a loader reading from a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), dir)
}

// Embedded returns a loader over the built-in levels.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded data missing: %v", err))
	}
	return NewLoader(sub, "built-in")
}

// String describes where levels are read from.
func (l *Loader) String() string {
	return l.desc
}

// Level loads level n. A missing file yields an error wrapping fs.ErrNotExist.
func (l *Loader) Level(n int) (*engine.TileMap, error) {
	name := MapName(n)
	for _, ext := range formats.FormatExtensions() {
		m, err := l.LoadFile(name + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return m, err
	}
	return nil, fmt.Errorf("levels: %s in %s: %w", name, l.desc, fs.ErrNotExist)
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(file string) (*engine.TileMap, error) {
	lvl, err := l.parseFile(file)
	if err != nil {
		return nil, err
	}
	if err := validate(lvl); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", file, err)
	}
	return ToTileMap(lvl), nil
}

func (l *Loader) parseFile(file string) (formats.Level, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return formats.Level{}, fmt.Errorf("levels: reading %s: %w", file, err)
	}

	var lvl formats.Level
	switch strings.ToLower(path.Ext(file)) {
	case ".yaml", ".yml":
		lvl, err = formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("levels: %s: unsupported extension", file)
	}
	if err != nil {
		return formats.Level{}, fmt.Errorf("levels: parsing %s: %w", file, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(path.Base(file), path.Ext(file))
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = DefaultTileSize
	}
	return lvl, nil
}

func validate(lvl formats.Level) error {
	if lvl.Width == 0 || lvl.Height == 0 {
		return fmt.Errorf("%w: empty map", ErrInvalid)
	}
	if lvl.Count(formats.LayerPlatforms) == 0 {
		return fmt.Errorf("%w: no platforms", ErrInvalid)
	}
	return nil
}

// List scans the file system for level files, sorted by level number.
// Files that fail to load are listed with Err set.
func (l *Loader) List() ([]Info, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: listing %s: %w", l.desc, err)
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		n, ok := ParseMapName(e.Name())
		if !ok {
			continue
		}

		info := Info{Number: n, File: e.Name()}
		lvl, err := l.parseFile(e.Name())
		if err == nil {
			err = validate(lvl)
		}
		if err != nil {
			info.Err = err
		} else {
			info.Name = lvl.Name
			info.Width = lvl.Width
			info.Height = lvl.Height
			info.Items = lvl.Count(formats.LayerItems)
			info.Hazards = lvl.Count(formats.LayerDeathBox)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Number != infos[j].Number {
			return infos[i].Number < infos[j].Number
		}
		return infos[i].File < infos[j].File
	})
	return infos, nil
}

// Count returns the number of consecutive playable levels starting at 1.
func (l *Loader) Count() int {
	infos, err := l.List()
	if err != nil {
		return 0
	}
	next := 1
	for _, info := range infos {
		if info.Number == next && info.Err == nil {
			next++
		}
	}
	return next - 1
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// ToTileMap converts a parsed level into engine map geometry.
func ToTileMap(lvl formats.Level) *engine.TileMap {
	m := &engine.TileMap{
		Name:     lvl.Name,
		Width:    lvl.Width,
		Height:   lvl.Height,
		TileSize: lvl.TileSize,
	}
	for _, layer := range lvl.Layers {
		ml := engine.MapLayer{Name: layer.Name}
		for _, t := range layer.Tiles {
			ml.Tiles = append(ml.Tiles, engine.Tile{
				Col:   t.Col,
				Row:   t.Row,
				Scale: t.Scale,
				Look:  engine.Appearance{Glyph: t.Glyph, Color: t.Color, Single: t.Single},
			})
		}
		m.Layers = append(m.Layers, ml)
	}
	return m
}
