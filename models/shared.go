package models

import "time"

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from longitude/latitude.
func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lon returns the longitude, or 0 when the point is malformed.
func (g GeoPoint) Lon() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the latitude, or 0 when the point is malformed.
func (g GeoPoint) Lat() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Valid reports whether the point carries both coordinates.
func (g GeoPoint) Valid() bool {
	return len(g.Coordinates) >= 2
}

// HistoryEntry is one immutable line in a booking's audit trail.
type HistoryEntry struct {
	At    time.Time `bson:"at" json:"at"`
	Actor string    `bson:"actor" json:"actor"` // e.g. "client:<id>", "admin:<id>", "system"
	Note  string    `bson:"note" json:"note"`
}
