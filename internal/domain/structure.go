package domain

import (
	"math"
	"strings"
	"time"
)

type StructureType string

const (
	StructureBOS   StructureType = "BOS"
	StructureCHoCH StructureType = "CHoCH"
)

func (t StructureType) IsValid() bool {
	return t == StructureBOS || t == StructureCHoCH
}

type StructureDirection string

const (
	StructureBullish StructureDirection = "BULLISH"
	StructureBearish StructureDirection = "BEARISH"
)

func (d StructureDirection) IsValid() bool {
	return d == StructureBullish || d == StructureBearish
}

// Structure is a recorded market-structure signal (break of structure or
// change of character).
type Structure struct {
	ID            ID                 `json:"id"`
	Instrument    string             `json:"instrument"`
	StructureType StructureType      `json:"structure_type"`
	Direction     StructureDirection `json:"direction"`
	PriceLevel    float64            `json:"price_level"`
	ScreenshotURL *string            `json:"screenshot_url"`
	Notes         *string            `json:"notes"`
	CreatedAt     time.Time          `json:"created_at"`
}

type NewStructure struct {
	Instrument    string
	StructureType StructureType
	Direction     StructureDirection
	PriceLevel    float64
	ScreenshotURL *string
	Notes         *string
}

func (s NewStructure) Validate() error {
	if strings.TrimSpace(s.Instrument) == "" {
		return MissingField("instrument")
	}
	if s.StructureType == "" {
		return MissingField("structure_type")
	}
	if !s.StructureType.IsValid() {
		return &ValidationError{Field: "structure_type", Message: "Invalid structure_type. Must be BOS or CHoCH"}
	}
	if math.IsNaN(s.PriceLevel) || math.IsInf(s.PriceLevel, 0) {
		return InvalidNumber("price_level")
	}
	if s.Direction == "" {
		return MissingField("direction")
	}
	if !s.Direction.IsValid() {
		return &ValidationError{Field: "direction", Message: "Invalid direction. Must be BULLISH or BEARISH"}
	}
	return nil
}
