package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProjectType is the energy category of a project
type ProjectType string

// supported project types, in tie-break order
const (
	TypeSolar    ProjectType = "Solar"
	TypeWind     ProjectType = "Wind"
	TypeHydro    ProjectType = "Hydro"
	TypeBattery  ProjectType = "Battery"
	TypeHydrogen ProjectType = "Hydrogen"
	TypeBiofuel  ProjectType = "Biofuel"
)

// ProjectTypes lists all project types in their fixed order
var ProjectTypes = []ProjectType{TypeSolar, TypeWind, TypeHydro, TypeBattery, TypeHydrogen, TypeBiofuel}

// ParseProjectType converts a free-form name ("solar", "Green Hydrogen", "Battery Storage") to a ProjectType
func ParseProjectType(s string) (ProjectType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return "", false
	case strings.Contains(v, "solar"), v == "pv":
		return TypeSolar, true
	case strings.Contains(v, "wind"):
		return TypeWind, true
	case strings.Contains(v, "hydrogen"), strings.Contains(v, "electroly"):
		return TypeHydrogen, true
	case strings.Contains(v, "hydro"):
		return TypeHydro, true
	case strings.Contains(v, "battery"), strings.Contains(v, "storage"), v == "bess":
		return TypeBattery, true
	case strings.Contains(v, "biofuel"), strings.Contains(v, "biogas"), strings.Contains(v, "ethanol"),
		strings.Contains(v, "biomass"), strings.Contains(v, "cbg"):
		return TypeBiofuel, true
	}
	return "", false
}

// Key returns lower-cased type name, used as a map key in training profiles
func (t ProjectType) Key() string { return strings.ToLower(string(t)) }

// Category is the business category of a project
type Category string

// project categories
const (
	CategoryManufacturing Category = "Manufacturing"
	CategoryGeneration    Category = "Generation"
	CategoryStorage       Category = "Storage"
	CategoryProduction    Category = "Production"
)

// project statuses
const (
	StatusAnnounced             = "Announced"
	StatusPlanning              = "Planning"
	StatusApproved              = "Approved"
	StatusLandAcquisition       = "Land Acquisition"
	StatusUnderConstruction     = "Under Construction"
	StatusPartiallyCommissioned = "Partially Commissioned"
)

// default field values
const (
	Unknown        = "Unknown"
	NotAvailable   = "NA"
	UnnamedProject = "Unnamed Renewable Energy Project"
)

// Project is a structured record of an in-pipeline renewable energy project
type Project struct {
	ID                   int64       `json:"id"`
	Type                 ProjectType `json:"type"`
	Name                 string      `json:"name"`
	Company              string      `json:"company"`
	Ownership            string      `json:"ownership"`
	PLI                  string      `json:"pli"`
	State                string      `json:"state"`
	Location             string      `json:"location"`
	AnnouncementDate     string      `json:"announcement_date"`
	Category             Category    `json:"category"`
	Input                string      `json:"input"`
	Output               string      `json:"output"`
	Capacity             Capacity    `json:"capacity"`
	FeedstockType        string      `json:"feedstock_type"`
	Status               string      `json:"status"`
	LandAcquisition      string      `json:"land_acquisition"`
	PowerApproval        string      `json:"power_approval"`
	EnvironmentClearance string      `json:"environment_clearance"`
	ALMMListing          string      `json:"almm_listing"`
	InvestmentUSD        float64     `json:"investment_usd"` // USD millions
	InvestmentINR        float64     `json:"investment_inr"` // INR billions
	ExpectedCompletion   string      `json:"expected_completion"`
	Source               string      `json:"source"`
	LastUpdated          time.Time   `json:"last_updated"`
	CreatedAt            time.Time   `json:"created_at"`
}

// NewProject makes a project of the given type with all text fields set to their defaults
func NewProject(t ProjectType) Project {
	return Project{
		Type:                 t,
		Name:                 UnnamedProject,
		Company:              Unknown,
		Ownership:            NotAvailable,
		PLI:                  NotAvailable,
		State:                Unknown,
		Location:             NotAvailable,
		Category:             DefaultCategory(t),
		Input:                NotAvailable,
		Output:               NotAvailable,
		Capacity:             Capacity{Kind: PrimaryCapacityKind(t)},
		FeedstockType:        NotAvailable,
		Status:               StatusAnnounced,
		LandAcquisition:      NotAvailable,
		PowerApproval:        NotAvailable,
		EnvironmentClearance: NotAvailable,
		ALMMListing:          NotAvailable,
		ExpectedCompletion:   Unknown,
	}
}

// Validate checks that the project has a known type and a capacity kind allowed for it
func (p Project) Validate() error {
	if _, ok := typeKinds[p.Type]; !ok {
		return fmt.Errorf("unknown project type %q", p.Type)
	}
	if !KindAllowed(p.Type, p.Capacity.Kind) {
		return fmt.Errorf("capacity kind %q not allowed for %s", p.Capacity.Kind, p.Type)
	}
	if p.Capacity.Value < 0 {
		return fmt.Errorf("negative capacity %v", p.Capacity.Value)
	}
	return nil
}

// DefaultCategory returns the category assumed for a type when the text gives no better hint
func DefaultCategory(t ProjectType) Category {
	switch t {
	case TypeBattery:
		return CategoryStorage
	case TypeHydrogen, TypeBiofuel:
		return CategoryProduction
	default:
		return CategoryGeneration
	}
}
