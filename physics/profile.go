package physics

import (
	"fmt"
	"sort"
	"strings"
)

// Surface is a named contact friction preset
type Surface struct {
	Name     string
	Friction float64 // per-second velocity retention at contact
}

// Surface presets, ordered from slickest to stickiest
var (
	SurfaceIce    = Surface{Name: "ice", Friction: FrictionIce}
	SurfaceSteel  = Surface{Name: "steel", Friction: 0.8}
	SurfaceWood   = Surface{Name: "wood", Friction: 0.5}
	SurfaceSand   = Surface{Name: "sand", Friction: 0.1}
	SurfaceGround = Surface{Name: "ground", Friction: FrictionGround}
)

var surfaces = map[string]Surface{
	SurfaceIce.Name:    SurfaceIce,
	SurfaceSteel.Name:  SurfaceSteel,
	SurfaceWood.Name:   SurfaceWood,
	SurfaceSand.Name:   SurfaceSand,
	SurfaceGround.Name: SurfaceGround,
}

// LookupSurface returns the preset for name, case-insensitive
func LookupSurface(name string) (Surface, error) {
	s, ok := surfaces[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Surface{}, fmt.Errorf("unknown surface %q, want one of %s", name, strings.Join(SurfaceNames(), ", "))
	}
	return s, nil
}

// SurfaceNames lists preset names sorted by decreasing friction retention
func SurfaceNames() []string {
	list := make([]Surface, 0, len(surfaces))
	for _, s := range surfaces {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Friction > list[j].Friction })

	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}
