// Package preview renders a material onto a lit sphere. It is a small
// tile-parallel path tracer meant for inspecting materials and textures,
// not for rendering scenes.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
)

// DefaultTileSize is the tile edge length used when Config.TileSize is zero
const DefaultTileSize = 32

// ErrInvalidConfig is returned by Render for unusable image or sampling settings
var ErrInvalidConfig = errors.New("preview: invalid config")

// Config contains configuration for a preview render
type Config struct {
	Width, Height      int
	SamplesPerPixel    int     // Maximum samples per pixel
	AdaptiveMinSamples float64 // Fraction of SamplesPerPixel taken before convergence is tested
	AdaptiveThreshold  float64 // Relative luminance error to stop at; 0 disables adaptive sampling
	MaxDepth           int     // Maximum path vertices
	TileSize           int     // Size of each tile (0 = DefaultTileSize)
	NumWorkers         int     // Number of parallel workers (0 = use CPU count)
	Seed               int64   // Base seed for tile samplers

	CameraDistance float64 // Distance from the sphere center
	FieldOfView    float64 // Vertical field of view in degrees

	SkyTop       core.Color
	SkyBottom    core.Color
	SunDirection core.Vec3 // Direction towards the sun; normalized by Render
	SunColor     core.Color
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:              256,
		Height:             256,
		SamplesPerPixel:    64,
		AdaptiveMinSamples: 0.25,
		AdaptiveThreshold:  0.02,
		MaxDepth:           8,
		TileSize:           DefaultTileSize,
		NumWorkers:         0, // Auto-detect CPU count
		CameraDistance:     3.5,
		FieldOfView:        40,
		SkyTop:             core.NewColor(0.5, 0.7, 1.0),
		SkyBottom:          core.NewColor(0.15, 0.12, 0.1),
		SunDirection:       core.NewVec3(-1, 1.5, 1),
		SunColor:           core.Gray(2.5),
	}
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.CameraDistance <= 1:
		return fmt.Errorf("%w: camera distance %v is inside the sphere", ErrInvalidConfig, c.CameraDistance)
	case c.FieldOfView <= 0 || c.FieldOfView >= 180:
		return fmt.Errorf("%w: field of view %v", ErrInvalidConfig, c.FieldOfView)
	}
	return nil
}

// Render shades m on a unit sphere and returns the gamma-corrected image
func Render(m material.Material, cfg Config) (*image.RGBA, RenderStats, error) {
	if material.IsNil(m) {
		return nil, RenderStats{}, material.ErrNilMaterial
	}
	if err := cfg.validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultTileSize
	}

	start := time.Now()
	scene := &Scene{
		Material:     m,
		Radius:       1,
		SkyTop:       cfg.SkyTop,
		SkyBottom:    cfg.SkyBottom,
		SunDirection: cfg.SunDirection.Normalize(),
		SunColor:     cfg.SunColor,
		MaxDepth:     cfg.MaxDepth,
	}
	camera := NewCamera(cfg.Width, cfg.Height, cfg.CameraDistance, cfg.FieldOfView)

	pixelStats := make([][]PixelStats, cfg.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, cfg.Width)
	}

	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, cfg.Seed)
	pool := NewWorkerPool(scene, camera, cfg, len(tiles))
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, PixelStats: pixelStats})
	}

	var stats RenderStats
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = errors.New("preview: worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.merge(result.Stats)
	}
	pool.Stop()
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			img.SetRGBA(x, y, toRGBA(pixelStats[y][x].Color()))
		}
	}

	core.Logger().Info("rendered material preview",
		"material", m.Kind().String(),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"workers", pool.GetNumWorkers(),
		"avg_samples", stats.AverageSamples,
		"dropped", stats.DroppedSamples,
		"elapsed", time.Since(start))
	return img, stats, nil
}

// toRGBA converts linear radiance to RGBA with gamma 2 and clamping
func toRGBA(c core.Color) color.RGBA {
	c = core.NewColor(math.Sqrt(math.Max(0, c.R)), math.Sqrt(math.Max(0, c.G)), math.Sqrt(math.Max(0, c.B)))
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: 255,
	}
}
