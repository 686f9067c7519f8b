package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedSchema is the top-level YAML structure for a tree import. Entries
// reference each other by ref, which exists only inside the file; real ids
// are assigned during conversion.
type SeedSchema struct {
	Objectives []ObjectiveSeed `yaml:"objectives"`
	KPIs       []KPISeed       `yaml:"kpis"`
	Links      []LinkSeed      `yaml:"links"`
}

// ObjectiveSeed defines one objective in the import file.
type ObjectiveSeed struct {
	Ref          string   `yaml:"ref"`
	ParentRef    *string  `yaml:"parent_ref,omitempty"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description,omitempty"`
	Level        string   `yaml:"level"`
	Contributors []string `yaml:"contributors,omitempty"`
	DueDate      *string  `yaml:"due_date,omitempty"`
	Quarter      int      `yaml:"quarter"`
	Year         int      `yaml:"year"`
}

// KPISeed defines one KPI in the import file.
type KPISeed struct {
	Ref    string  `yaml:"ref"`
	Name   string  `yaml:"name"`
	Unit   string  `yaml:"unit,omitempty"`
	Value  float64 `yaml:"value"`
	Target float64 `yaml:"target"`
}

// LinkSeed associates a KPI with an objective, both by ref.
type LinkSeed struct {
	ObjectiveRef string `yaml:"objective_ref"`
	KPIRef       string `yaml:"kpi_ref"`
}

// LoadSeedSchema reads and parses a seed YAML file.
func LoadSeedSchema(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema SeedSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}
