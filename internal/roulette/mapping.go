package roulette

import "fmt"

// Color is the payout color of a pocket.
type Color string

// Pocket colors.
const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// Valid reports whether c is one of the known pocket colors.
func (c Color) Valid() bool {
	switch c {
	case Red, Black, Green:
		return true
	}
	return false
}

// Pocket is one (number, color) entry of a Mapping.
type Pocket struct {
	Number int   `yaml:"number" json:"number"`
	Color  Color `yaml:"color" json:"color"`
}

func (p Pocket) String() string {
	return fmt.Sprintf("%d %s", p.Number, p.Color)
}

// Mapping is the fixed table of pockets aligned by index with a PocketTable.
type Mapping []Pocket

// DefaultMapping returns the single-zero wheel in ring order, aligned with the
// boundary order produced by BuildPocketTable for the stock wheel model.
func DefaultMapping() Mapping {
	return Mapping{
		{36, Red}, {13, Black}, {27, Red}, {6, Black}, {34, Red}, {17, Black},
		{25, Red}, {2, Black}, {21, Red}, {4, Black}, {19, Red}, {15, Black},
		{32, Red}, {0, Green}, {26, Black}, {3, Red}, {35, Black}, {12, Red},
		{28, Black}, {7, Red}, {29, Black}, {18, Red}, {22, Black}, {9, Red},
		{31, Black}, {14, Red}, {20, Black}, {1, Red}, {33, Black}, {16, Red},
		{24, Black}, {5, Red}, {10, Black}, {23, Red}, {8, Black}, {30, Red},
		{11, Black},
	}
}

// Validate checks that every entry has a known color and that numbers are unique.
func (m Mapping) Validate() error {
	if len(m) < 2 {
		return fmt.Errorf("%w: %d entries", ErrMappingMismatch, len(m))
	}
	seen := make(map[int]bool, len(m))
	for i, p := range m {
		if !p.Color.Valid() {
			return fmt.Errorf("%w: entry %d has color %q", ErrMappingMismatch, i, p.Color)
		}
		if seen[p.Number] {
			return fmt.Errorf("%w: number %d appears twice", ErrMappingMismatch, p.Number)
		}
		seen[p.Number] = true
	}
	return nil
}
