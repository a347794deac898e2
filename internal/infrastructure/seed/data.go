package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed data/*.json
var dataFS embed.FS

// RoleSeed is one entry of data/roles.json
type RoleSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HouseTypeSeed is one entry of data/house_types.json
type HouseTypeSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RegionSeed is a region with its nested divisions, from data/locations.json
type RegionSeed struct {
	Name      string         `json:"name"`
	Divisions []DivisionSeed `json:"divisions"`
}

// DivisionSeed is a division with its subdivisions
type DivisionSeed struct {
	Name         string            `json:"name"`
	Subdivisions []SubdivisionSeed `json:"subdivisions"`
}

// SubdivisionSeed is a subdivision with its neighborhood names
type SubdivisionSeed struct {
	Name          string   `json:"name"`
	Neighborhoods []string `json:"neighborhoods"`
}

// Data is the full reference data set
type Data struct {
	Roles      []RoleSeed
	HouseTypes []HouseTypeSeed
	Regions    []RegionSeed
}

// DefaultData returns the reference data embedded in the binary
func DefaultData() (*Data, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadData(sub)
}

// LoadData reads roles.json, house_types.json and locations.json from fsys
func LoadData(fsys fs.FS) (*Data, error) {
	d := &Data{}
	if err := readJSON(fsys, "roles.json", &d.Roles); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "house_types.json", &d.HouseTypes); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "locations.json", &d.Regions); err != nil {
		return nil, err
	}
	return d, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", name, err)
	}
	return nil
}
