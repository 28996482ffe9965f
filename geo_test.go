package keycache

import (
	"context"
	"errors"
	"testing"
)

func TestGeoCache(t *testing.T) {
	_, pool := newTestRedis(t)
	ctx := context.Background()
	g, err := NewGeoDb("Shops", testOptions[string](t, pool))
	if err != nil {
		t.Fatalf("NewGeoDb: %v", err)
	}

	n, err := g.AddMany(ctx, []GeoPoint{
		{Member: "palermo", Longitude: 13.361389, Latitude: 38.115556},
		{Member: "catania", Longitude: 15.087269, Latitude: 37.502669},
	}, "sicily")
	if err != nil || n != 2 {
		t.Fatalf("AddMany = %d %v", n, err)
	}
	if ok, err := g.Add(ctx, GeoPoint{Member: "palermo", Longitude: 13.4, Latitude: 38.1}, "sicily"); err != nil || ok {
		t.Fatalf("re-adding palermo should move it, ok=%v err=%v", ok, err)
	}
	if _, err := g.Add(ctx, GeoPoint{Member: "x", Longitude: 181}, "sicily"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := g.Add(ctx, GeoPoint{}, "sicily"); !errors.Is(err, ErrArgumentMissing) {
		t.Fatalf("expected ErrArgumentMissing, got %v", err)
	}

	pos, err := g.Pos(ctx, []string{"catania", "nowhere"}, "sicily")
	if err != nil || len(pos) != 2 || pos[0] == nil || pos[1] != nil {
		t.Fatalf("Pos = %v %v", pos, err)
	}
	if pos[0].Longitude < 15.08 || pos[0].Longitude > 15.09 {
		t.Fatalf("catania longitude = %v", pos[0].Longitude)
	}

	d, ok, err := g.Dist(ctx, "palermo", "catania", Kilometers, "sicily")
	if err != nil || !ok || d < 150 || d > 170 {
		t.Fatalf("Dist = %v %v %v", d, ok, err)
	}
	if _, ok, err := g.Dist(ctx, "palermo", "nowhere", Meters, "sicily"); err != nil || ok {
		t.Fatalf("Dist to missing member = %v %v", ok, err)
	}

	near, err := g.Radius(ctx, 15, 37, 300, Kilometers, 0, Asc, "sicily")
	if err != nil || len(near) != 2 || near[0].Member != "catania" {
		t.Fatalf("Radius = %v %v", near, err)
	}
	if near[0].Dist <= 0 || near[0].Dist > near[1].Dist {
		t.Fatalf("Radius distances = %v", near)
	}
	one, err := g.RadiusOf(ctx, "palermo", 200, Kilometers, 1, Desc, "sicily")
	if err != nil || len(one) != 1 || one[0].Member != "catania" {
		t.Fatalf("RadiusOf = %v %v", one, err)
	}

	if n, _ := g.Count(ctx, "sicily"); n != 2 {
		t.Fatalf("Count = %d", n)
	}
	if n, err := g.Delete(ctx, []string{"palermo"}, "sicily"); err != nil || n != 1 {
		t.Fatalf("Delete = %d %v", n, err)
	}
}

func TestDistUnitString(t *testing.T) {
	for u, want := range map[DistUnit]string{Meters: "m", Kilometers: "km", Miles: "mi", Feet: "ft"} {
		if u.String() != want {
			t.Fatalf("%d.String() = %q", u, u.String())
		}
	}
}
