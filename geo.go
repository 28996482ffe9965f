package keycache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// GeoPoint is a named position.
type GeoPoint struct {
	Member    string
	Longitude float64
	Latitude  float64
}

// GeoMatch is one radius query result.
type GeoMatch struct {
	GeoPoint
	Dist float64 // in the query unit
}

// GeoCache stores named positions in a redis geo set.
type GeoCache struct {
	*Base
}

func NewGeoCache(node, item string, opts Options[string]) (*GeoCache, error) {
	b, _, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &GeoCache{Base: b}, nil
}

func checkPoint(p GeoPoint) error {
	switch {
	case p.Member == "":
		return &ArgumentError{Name: "member"}
	case p.Longitude < -180 || p.Longitude > 180:
		return fmt.Errorf("%w: longitude %v", ErrInvalidArgument, p.Longitude)
	case p.Latitude < -90 || p.Latitude > 90:
		return fmt.Errorf("%w: latitude %v", ErrInvalidArgument, p.Latitude)
	}
	return nil
}

// Add adds or moves one member and reports whether it was new.
func (g *GeoCache) Add(ctx context.Context, p GeoPoint, args ...any) (bool, error) {
	n, err := g.AddMany(ctx, []GeoPoint{p}, args...)
	return n > 0, err
}

// AddMany returns the number of new members.
func (g *GeoCache) AddMany(ctx context.Context, ps []GeoPoint, args ...any) (int64, error) {
	key, db, err := g.target(args)
	if err != nil {
		return 0, err
	}
	if len(ps) == 0 {
		return 0, nil
	}
	locs := make([]*redis.GeoLocation, len(ps))
	for i, p := range ps {
		if err := checkPoint(p); err != nil {
			return 0, err
		}
		locs[i] = &redis.GeoLocation{Name: p.Member, Longitude: p.Longitude, Latitude: p.Latitude}
	}
	return db.GeoAdd(ctx, key, locs...).Result()
}

// Pos returns the positions of members; missing members yield nil entries.
func (g *GeoCache) Pos(ctx context.Context, members []string, args ...any) ([]*GeoPoint, error) {
	key, db, err := g.target(args)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	pos, err := db.GeoPos(ctx, key, members...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*GeoPoint, len(pos))
	for i, p := range pos {
		if p != nil {
			out[i] = &GeoPoint{Member: members[i], Longitude: p.Longitude, Latitude: p.Latitude}
		}
	}
	return out, nil
}

// Dist returns the distance between two members, or false when either is missing.
func (g *GeoCache) Dist(ctx context.Context, a, b string, unit DistUnit, args ...any) (float64, bool, error) {
	key, db, err := g.target(args)
	if err != nil {
		return 0, false, err
	}
	d, err := db.GeoDist(ctx, key, a, b, unit.String()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// Hash returns the geohash of each member; missing members yield "".
func (g *GeoCache) Hash(ctx context.Context, members []string, args ...any) ([]string, error) {
	key, db, err := g.target(args)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return db.GeoHash(ctx, key, members...).Result()
}

// Radius returns members within radius of a position, nearest first for Asc.
// count <= 0 returns every match.
func (g *GeoCache) Radius(ctx context.Context, lon, lat, radius float64, unit DistUnit, count int, order Order, args ...any) ([]GeoMatch, error) {
	if err := checkPoint(GeoPoint{Member: "-", Longitude: lon, Latitude: lat}); err != nil {
		return nil, err
	}
	q, err := radiusQuery(radius, unit, count, order)
	if err != nil {
		return nil, err
	}
	key, db, err := g.target(args)
	if err != nil {
		return nil, err
	}
	locs, err := db.GeoRadius(ctx, key, lon, lat, q).Result()
	if err != nil {
		return nil, err
	}
	return matches(locs), nil
}

// RadiusOf is Radius centred on an existing member.
func (g *GeoCache) RadiusOf(ctx context.Context, member string, radius float64, unit DistUnit, count int, order Order, args ...any) ([]GeoMatch, error) {
	if member == "" {
		return nil, &ArgumentError{Name: "member"}
	}
	q, err := radiusQuery(radius, unit, count, order)
	if err != nil {
		return nil, err
	}
	key, db, err := g.target(args)
	if err != nil {
		return nil, err
	}
	locs, err := db.GeoRadiusByMember(ctx, key, member, q).Result()
	if err != nil {
		return nil, err
	}
	return matches(locs), nil
}

// Delete removes members and returns how many existed.
func (g *GeoCache) Delete(ctx context.Context, members []string, args ...any) (int64, error) {
	key, db, err := g.target(args)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	ms := make([]any, len(members))
	for i, m := range members {
		ms[i] = m
	}
	return db.ZRem(ctx, key, ms...).Result()
}

func (g *GeoCache) Count(ctx context.Context, args ...any) (int64, error) {
	key, db, err := g.target(args)
	if err != nil {
		return 0, err
	}
	return db.ZCard(ctx, key).Result()
}

func radiusQuery(radius float64, unit DistUnit, count int, order Order) (*redis.GeoRadiusQuery, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidArgument, radius)
	}
	q := &redis.GeoRadiusQuery{
		Radius:    radius,
		Unit:      unit.String(),
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}
	if order == Desc {
		q.Sort = "DESC"
	}
	if count > 0 {
		q.Count = count
	}
	return q, nil
}

func matches(locs []redis.GeoLocation) []GeoMatch {
	out := make([]GeoMatch, len(locs))
	for i, l := range locs {
		out[i] = GeoMatch{
			GeoPoint: GeoPoint{Member: l.Name, Longitude: l.Longitude, Latitude: l.Latitude},
			Dist:     l.Dist,
		}
	}
	return out
}
