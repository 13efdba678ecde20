package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusDraft      BookingStatus = "Draft"
	StatusPendente   BookingStatus = "Pendente"
	StatusConfirmado BookingStatus = "Confirmado"
	StatusRealizado  BookingStatus = "Realizado"
	StatusConcluido  BookingStatus = "Concluído"
	StatusCancelado  BookingStatus = "Cancelado"
)

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusConcluido || s == StatusCancelado
}

// Assigned reports whether bookings in this state must carry a technician
// and a concrete [start,end) window.
func (s BookingStatus) Assigned() bool {
	switch s {
	case StatusConfirmado, StatusRealizado, StatusConcluido:
		return true
	}
	return false
}

// Booking represents a photo/video session request. Draft bookings carry no
// technician or time window; finalization fills both and moves the status to
// Confirmado. Bookings are never hard-deleted — Cancelado is a terminal
// status, not a removal.
type Booking struct {
	ID           string         `bson:"id" json:"id"`
	ClientID     string         `bson:"client_id" json:"client_id"`
	Address      string         `bson:"address" json:"address"`
	LocationGeo  GeoPoint       `bson:"location_geo" json:"location_geo"`
	Date         string         `bson:"date" json:"date"` // "2006-01-02"
	Start        int            `bson:"start" json:"start"`
	End          int            `bson:"end" json:"end"` // minutes from midnight, 0/0 while Draft
	ServiceIDs   []string       `bson:"service_ids" json:"service_ids"`
	Status       BookingStatus  `bson:"status" json:"status"`
	TechnicianID string         `bson:"technician_id,omitempty" json:"technician_id,omitempty"`
	TotalPrice   float64        `bson:"total_price" json:"total_price"`
	History      []HistoryEntry `bson:"history" json:"history"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
}
