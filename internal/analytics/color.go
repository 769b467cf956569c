package analytics

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// RGBA is a display color with 0-255 components.
type RGBA [4]uint8

var defaultColor = RGBA{200, 30, 0, 160}

// DefaultColor returns the color pinned to MaintenanceCategory. Unknown
// categories fall back to it too.
func DefaultColor() RGBA { return defaultColor }

const colorAlpha = 160

// Color schemes accepted by BuildColorMap.
const (
	SchemeRandom = "random"
	SchemeHash   = "hash"
)

// ColorOptions selects how non-pinned categories get their color. With
// SchemeRandom the colors only stay stable for the lifetime of the map; a
// zero Seed picks one from the clock. SchemeHash is reproducible across runs.
type ColorOptions struct {
	Scheme string
	Seed   uint64
}

// ColorMap assigns a color to each category.
type ColorMap map[string]RGBA

// BuildColorMap assigns every category a color.
func BuildColorMap(categories []string, opts ColorOptions) ColorMap {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	m := make(ColorMap, len(categories))
	for _, category := range categories {
		if _, ok := m[category]; ok {
			continue
		}
		switch opts.Scheme {
		case SchemeHash:
			m[category] = hashColor(category)
		default:
			m[category] = randomColor(rng)
		}
	}
	m[MaintenanceCategory] = DefaultColor()
	return m
}

// ColorFor returns the color of category, or DefaultColor when it has none.
func (m ColorMap) ColorFor(category string) RGBA {
	if c, ok := m[category]; ok {
		return c
	}
	return DefaultColor()
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// randomComponent draws from [0, 255).
func randomComponent(rng *rand.Rand) uint8 {
	return uint8(rng.IntN(255))
}

// randomColor never returns the pinned color.
func randomColor(rng *rand.Rand) RGBA {
	for {
		c := RGBA{randomComponent(rng), randomComponent(rng), randomComponent(rng), colorAlpha}
		if c != defaultColor {
			return c
		}
	}
}

func hashColor(category string) RGBA {
	h := fnv.New32a()
	h.Write([]byte(category))
	sum := h.Sum32()
	c := RGBA{uint8(sum >> 16), uint8(sum >> 8), uint8(sum), colorAlpha}
	if c == defaultColor {
		c[2]++
	}
	return c
}
