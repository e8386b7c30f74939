package model

import (
	"github.com/LeonardoBeccarini/symbiont/internal/model/entities"
	"github.com/LeonardoBeccarini/symbiont/internal/model/messages"
)

// Alias for types shared by services

type (
	FarmState         = entities.FarmState
	FarmSnapshot      = messages.FarmSnapshot
	NotificationEvent = messages.NotificationEvent
)

const (
	MinYield   = entities.MinYield
	MaxYield   = entities.MaxYield
	SnapshotID = messages.SnapshotID
)

// InitialState returns the startup record.
func InitialState(initialYield float64) FarmState {
	return entities.InitialState(initialYield)
}
