package models

import "time"

// BlockType distinguishes technician-requested leave from admin holds.
type BlockType string

const (
	BlockPersonalLeave BlockType = "personal_leave"
	BlockAdmin         BlockType = "admin_block"
)

// TimeOffBlock reserves an unavailable interval for a technician on a date.
// Blocks never overlap a Confirmado/Realizado/Concluído booking of the same
// technician; the block writer rejects such requests.
type TimeOffBlock struct {
	ID           string    `bson:"id" json:"id"`
	TechnicianID string    `bson:"technician_id" json:"technician_id"`
	Date         string    `bson:"date" json:"date"` // "2006-01-02"
	Start        int       `bson:"start" json:"start"`
	End          int       `bson:"end" json:"end"` // minutes from midnight
	Reason       string    `bson:"reason" json:"reason"`
	Type         BlockType `bson:"type" json:"type"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
