package roulette

import (
	"errors"
	"testing"
)

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()
	if len(m) != 37 {
		t.Fatalf("len = %d, want 37", len(m))
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		index int
		want  Pocket
	}{
		{0, Pocket{36, Red}},
		{13, Pocket{0, Green}},
		{27, Pocket{1, Red}},
		{36, Pocket{11, Black}},
	}
	for _, tt := range tests {
		if m[tt.index] != tt.want {
			t.Errorf("mapping[%d] = %v, want %v", tt.index, m[tt.index], tt.want)
		}
	}

	counts := map[Color]int{}
	for _, p := range m {
		counts[p.Color]++
	}
	if counts[Red] != 18 || counts[Black] != 18 || counts[Green] != 1 {
		t.Errorf("color counts = %v, want 18 red, 18 black, 1 green", counts)
	}
}

func TestMappingValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Mapping
		ok   bool
	}{
		{"default", DefaultMapping(), true},
		{"too short", Mapping{{0, Green}}, false},
		{"unknown color", Mapping{{0, Green}, {1, "blue"}}, false},
		{"repeated number", Mapping{{0, Green}, {0, Red}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrMappingMismatch) {
				t.Errorf("Validate() = %v, want ErrMappingMismatch", err)
			}
		})
	}
}
