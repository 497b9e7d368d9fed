package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func floatPtr(f float64) *float64    { return &f }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestIsValidKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		expected bool
	}{
		{"car", KindCar, true},
		{"sports car", KindSportsCar, true},
		{"truck", KindTruck, true},
		{"unknown kind", "motorcycle", false},
		{"empty kind", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidKind(tt.kind))
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC1D23", NormalizePlate("  abc1d23 "))
	assert.Equal(t, "", NormalizePlate("   "))
}

func TestReconstructVehicle_UnknownKind(t *testing.T) {
	v := ReconstructVehicle(RawVehicle{Kind: "hovercraft", Plate: "abc1234"})
	assert.Nil(t, v)
}

func TestReconstructVehicle_Car(t *testing.T) {
	raw := RawVehicle{
		ID:      primitive.NewObjectID(),
		OwnerID: "owner-1",
		Kind:    "car",
		Plate:   " abc1d23 ",
		Model:   "Onix",
		Color:   "black",
		Doors:   intPtr(4),
		// Truck fields present in the document must not leak into a car.
		CurrentLoad: floatPtr(100),
	}

	v := ReconstructVehicle(raw)
	require.NotNil(t, v)
	assert.Equal(t, KindCar, v.Kind)
	assert.Equal(t, "ABC1D23", v.Plate)
	require.NotNil(t, v.Doors)
	assert.Equal(t, 4, *v.Doors)
	assert.Nil(t, v.CurrentLoad)
	assert.Nil(t, v.TurboOn)
}

func TestReconstructVehicle_OptionalFieldsOnlyWhenPresent(t *testing.T) {
	sports := ReconstructVehicle(RawVehicle{Kind: "sports_car", Plate: "XYZ9A87", TurboOn: boolPtr(true)})
	require.NotNil(t, sports)
	require.NotNil(t, sports.TurboOn)
	assert.True(t, *sports.TurboOn)

	sportsNoTurbo := ReconstructVehicle(RawVehicle{Kind: "sports_car", Plate: "XYZ9A88"})
	require.NotNil(t, sportsNoTurbo)
	assert.Nil(t, sportsNoTurbo.TurboOn)

	truck := ReconstructVehicle(RawVehicle{
		Kind:         "truck",
		Plate:        "TRK0001",
		Axles:        intPtr(3),
		LoadCapacity: floatPtr(12000),
		CurrentLoad:  floatPtr(4500),
	})
	require.NotNil(t, truck)
	require.NotNil(t, truck.CurrentLoad)
	assert.Equal(t, 4500.0, *truck.CurrentLoad)
}

func TestReconstructVehicle_DropsIncompleteHistory(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	raw := RawVehicle{
		ID:    primitive.NewObjectID(),
		Kind:  "car",
		Plate: "ABC1D23",
		History: []RawMaintenance{
			{ServiceType: strPtr("Oil change"), Date: timePtr(date), Cost: floatPtr(150.5)},
			{ServiceType: strPtr("no date"), Cost: floatPtr(10)},
			{Date: timePtr(date), Cost: floatPtr(10)},
			{ServiceType: strPtr("no cost"), Date: timePtr(date)},
		},
	}

	v := ReconstructVehicle(raw)
	require.NotNil(t, v)
	require.Len(t, v.History, 1)
	assert.Equal(t, "Oil change", v.History[0].ServiceType)
	assert.Equal(t, raw.ID, v.History[0].VehicleID)
	assert.True(t, v.History[0].Validate())
}

func TestVehicle_AddMaintenance(t *testing.T) {
	v := Vehicle{Kind: KindCar, Plate: "ABC1D23"}
	v.AddMaintenance(Maintenance{ServiceType: "Inspection"})
	v.AddMaintenance(Maintenance{ServiceType: "Oil change"})
	assert.Len(t, v.History, 2)
}

func TestVehicle_ComputeStatus(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  Vehicle
		expected string
	}{
		{"engine off", Vehicle{Kind: KindCar}, "off"},
		{"idle", Vehicle{Kind: KindCar, EngineOn: true}, "stopped, engine on"},
		{"moving", Vehicle{Kind: KindCar, EngineOn: true, Speed: 80}, "moving at 80 km/h"},
		{
			"sports car with turbo",
			Vehicle{Kind: KindSportsCar, EngineOn: true, Speed: 120, TurboOn: boolPtr(true)},
			"moving at 120 km/h, turbo active",
		},
		{
			"sports car turbo off",
			Vehicle{Kind: KindSportsCar, EngineOn: true, Speed: 120, TurboOn: boolPtr(false)},
			"moving at 120 km/h",
		},
		{
			"loaded truck",
			Vehicle{Kind: KindTruck, EngineOn: true, CurrentLoad: floatPtr(4500), LoadCapacity: floatPtr(12000)},
			"stopped, engine on, carrying 4500/12000 kg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.vehicle.ComputeStatus())
		})
	}
}
