package models

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind discriminates the vehicle variants. Exactly one of the per-kind field
// groups on Vehicle is populated for a given kind.
type Kind string

const (
	KindCar       Kind = "car"
	KindSportsCar Kind = "sports_car"
	KindTruck     Kind = "truck"
)

// IsValidKind checks if a kind discriminator is recognized.
func IsValidKind(kind Kind) bool {
	switch kind {
	case KindCar, KindSportsCar, KindTruck:
		return true
	default:
		return false
	}
}

// Vehicle represents one vehicle in a user's garage together with its
// maintenance history.
type Vehicle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    string             `bson:"owner_id" json:"owner_id"`
	Kind       Kind               `bson:"kind" json:"kind"`
	Plate      string             `bson:"plate" json:"plate"`
	Model      string             `bson:"model" json:"model"`
	Color      string             `bson:"color" json:"color"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	SharedWith []string           `bson:"shared_with,omitempty" json:"shared_with,omitempty"`

	// Per-kind fields.
	Doors        *int     `bson:"doors,omitempty" json:"doors,omitempty"`                 // car, sports car
	Axles        *int     `bson:"axles,omitempty" json:"axles,omitempty"`                 // truck
	LoadCapacity *float64 `bson:"load_capacity,omitempty" json:"load_capacity,omitempty"` // truck, in kg
	TurboOn      *bool    `bson:"turbo_on,omitempty" json:"turbo_on,omitempty"`           // sports car
	CurrentLoad  *float64 `bson:"current_load,omitempty" json:"current_load,omitempty"`   // truck, in kg

	// Interaction state.
	EngineOn bool    `bson:"engine_on" json:"engine_on"`
	Speed    float64 `bson:"speed" json:"speed"` // in km/h

	History   []Maintenance `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// NormalizePlate uppercases and trims a license plate before it is compared
// or persisted. Plates are unique across all vehicles.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// AddMaintenance appends a record to the vehicle's history. Insertion order
// is not significant; consumers sort with SortByDateDesc for display.
func (v *Vehicle) AddMaintenance(record Maintenance) {
	v.History = append(v.History, record)
}

// ComputeStatus derives a display status from the ignition and speed flags
// plus the kind-specific state. It is never persisted on its own.
func (v *Vehicle) ComputeStatus() string {
	status := "off"
	switch {
	case v.EngineOn && v.Speed > 0:
		status = fmt.Sprintf("moving at %.0f km/h", v.Speed)
	case v.EngineOn:
		status = "stopped, engine on"
	}

	switch v.Kind {
	case KindSportsCar:
		if v.TurboOn != nil && *v.TurboOn {
			status += ", turbo active"
		}
	case KindTruck:
		if v.CurrentLoad != nil && v.LoadCapacity != nil {
			status += fmt.Sprintf(", carrying %.0f/%.0f kg", *v.CurrentLoad, *v.LoadCapacity)
		}
	}
	return status
}

// RawVehicle is the loosely typed shape of a persisted vehicle document.
// Pointer fields distinguish absent from zero during reconstruction.
type RawVehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      string             `bson:"owner_id" json:"owner_id"`
	Kind         string             `bson:"kind" json:"kind"`
	Plate        string             `bson:"plate" json:"plate"`
	Model        string             `bson:"model" json:"model"`
	Color        string             `bson:"color" json:"color"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	SharedWith   []string           `bson:"shared_with,omitempty" json:"shared_with,omitempty"`
	Doors        *int               `bson:"doors,omitempty" json:"doors,omitempty"`
	Axles        *int               `bson:"axles,omitempty" json:"axles,omitempty"`
	LoadCapacity *float64           `bson:"load_capacity,omitempty" json:"load_capacity,omitempty"`
	TurboOn      *bool              `bson:"turbo_on,omitempty" json:"turbo_on,omitempty"`
	CurrentLoad  *float64           `bson:"current_load,omitempty" json:"current_load,omitempty"`
	EngineOn     bool               `bson:"engine_on" json:"engine_on"`
	Speed        float64            `bson:"speed" json:"speed"`
	History      []RawMaintenance   `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// RawMaintenance is an unvalidated history entry inside a persisted vehicle
// document.
type RawMaintenance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceType *string            `bson:"service_type" json:"service_type"`
	Date        *time.Time         `bson:"date" json:"date"`
	Cost        *float64           `bson:"cost" json:"cost"`
	Mileage     *float64           `bson:"mileage,omitempty" json:"mileage,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ReconstructVehicle rebuilds a typed Vehicle from a persisted document. An
// unrecognized kind discriminator yields nil with a logged warning instead
// of an error. Per-kind optional fields are copied only when present, and
// history entries missing any of date, service type or cost are dropped.
func ReconstructVehicle(raw RawVehicle) *Vehicle {
	kind := Kind(raw.Kind)
	if !IsValidKind(kind) {
		log.WithFields(log.Fields{"kind": raw.Kind, "plate": raw.Plate}).
			Warn("vehicle: unknown kind discriminator, skipping record")
		return nil
	}

	v := &Vehicle{
		ID:         raw.ID,
		OwnerID:    raw.OwnerID,
		Kind:       kind,
		Plate:      NormalizePlate(raw.Plate),
		Model:      raw.Model,
		Color:      raw.Color,
		ImageURL:   raw.ImageURL,
		SharedWith: raw.SharedWith,
		EngineOn:   raw.EngineOn,
		Speed:      raw.Speed,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}

	switch kind {
	case KindCar:
		v.Doors = raw.Doors
	case KindSportsCar:
		v.Doors = raw.Doors
		if raw.TurboOn != nil {
			v.TurboOn = raw.TurboOn
		}
	case KindTruck:
		v.Axles = raw.Axles
		v.LoadCapacity = raw.LoadCapacity
		if raw.CurrentLoad != nil {
			v.CurrentLoad = raw.CurrentLoad
		}
	}

	for _, rm := range raw.History {
		if rm.Date == nil || rm.ServiceType == nil || rm.Cost == nil {
			log.WithField("plate", v.Plate).Warn("vehicle: dropping incomplete maintenance entry")
			continue
		}
		v.AddMaintenance(Maintenance{
			ID:          rm.ID,
			VehicleID:   raw.ID,
			ServiceType: *rm.ServiceType,
			Date:        rm.Date.UTC(),
			Cost:        *rm.Cost,
			Mileage:     rm.Mileage,
			Description: rm.Description,
		})
	}

	return v
}
