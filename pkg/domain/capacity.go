package domain

import (
	"fmt"
	"strconv"
)

// CapacityKind identifies which capacity attribute a value belongs to
type CapacityKind string

// capacity kinds, each with its canonical unit
const (
	KindGeneration         CapacityKind = "generation"          // GW
	KindStorage            CapacityKind = "storage"             // GWh
	KindCellModule         CapacityKind = "cell_module"         // GW
	KindElectrolyzer       CapacityKind = "electrolyzer"        // MW
	KindHydrogenProduction CapacityKind = "hydrogen_production" // tons/day
	KindBiofuel            CapacityKind = "biofuel"             // million litres/year
)

// Capacity is the single unit-normalized capacity attribute of a project
type Capacity struct {
	Kind  CapacityKind `json:"kind"`
	Value float64      `json:"value"`
}

// typeKinds lists capacity kinds allowed per type, primary kind first
var typeKinds = map[ProjectType][]CapacityKind{
	TypeSolar:    {KindGeneration, KindCellModule},
	TypeWind:     {KindGeneration},
	TypeHydro:    {KindGeneration},
	TypeBattery:  {KindStorage, KindCellModule},
	TypeHydrogen: {KindElectrolyzer, KindHydrogenProduction},
	TypeBiofuel:  {KindBiofuel},
}

// NewCapacity makes a capacity value and checks the kind is allowed for the type
func NewCapacity(t ProjectType, kind CapacityKind, value float64) (Capacity, error) {
	if !KindAllowed(t, kind) {
		return Capacity{}, fmt.Errorf("capacity kind %q not allowed for %s", kind, t)
	}
	if value < 0 {
		return Capacity{}, fmt.Errorf("negative capacity %v", value)
	}
	return Capacity{Kind: kind, Value: value}, nil
}

// PrimaryCapacityKind returns the kind used for a type when no specific evidence is found
func PrimaryCapacityKind(t ProjectType) CapacityKind {
	if kinds, ok := typeKinds[t]; ok {
		return kinds[0]
	}
	return KindGeneration
}

// CapacityKinds returns kinds allowed for the type, primary first
func CapacityKinds(t ProjectType) []CapacityKind {
	return append([]CapacityKind(nil), typeKinds[t]...)
}

// KindAllowed reports whether kind is a valid capacity kind for the type
func KindAllowed(t ProjectType, kind CapacityKind) bool {
	for _, k := range typeKinds[t] {
		if k == kind {
			return true
		}
	}
	return false
}

// Unit returns the measurement unit of the kind
func (k CapacityKind) Unit() string {
	switch k {
	case KindStorage:
		return "GWh"
	case KindElectrolyzer:
		return "MW"
	case KindHydrogenProduction:
		return "tons/day"
	case KindBiofuel:
		return "million litres/year"
	default:
		return "GW"
	}
}

// String formats capacity with its unit, "NA" for zero value
func (c Capacity) String() string {
	if c.Value == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64) + " " + c.Kind.Unit()
}

func (c Capacity) valueOf(kind CapacityKind) float64 {
	if c.Kind == kind {
		return c.Value
	}
	return 0
}

// GenerationCapacity in GW
func (c Capacity) GenerationCapacity() float64 { return c.valueOf(KindGeneration) }

// StorageCapacity in GWh
func (c Capacity) StorageCapacity() float64 { return c.valueOf(KindStorage) }

// CellModuleCapacity in GW
func (c Capacity) CellModuleCapacity() float64 { return c.valueOf(KindCellModule) }

// ElectrolyzerCapacity in MW
func (c Capacity) ElectrolyzerCapacity() float64 { return c.valueOf(KindElectrolyzer) }

// HydrogenProduction in tons/day
func (c Capacity) HydrogenProduction() float64 { return c.valueOf(KindHydrogenProduction) }

// BiofuelCapacity in million litres/year
func (c Capacity) BiofuelCapacity() float64 { return c.valueOf(KindBiofuel) }
