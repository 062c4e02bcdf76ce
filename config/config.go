// Package config loads an Archipelago's AgentOptions from a YAML settings
// file, the same shape recast.BuildSettings and cmd/recast's config/build
// commands use for the tile-mesh build parameters this engine's teacher
// ships with.
//
// Grounded on recast/inputgeom.go's BuildSettings (a flat, field-commented
// settings struct with no yaml struct tags, relying on yaml.v2's default
// lowercase field matching) and cmd/recast/cmd/utils.go's
// unmarshalYAMLFile helper.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/arl/landmass/archipelago"
	"github.com/arl/landmass/navmesh"
)

// AgentOptions mirrors archipelago.AgentOptions field-for-field in a form
// yaml.v2 can unmarshal directly: navmesh.PointSampleDistance3D has no
// exported fields of its own uniform enough to round-trip cleanly through
// YAML, so PointSampleHorizontal/Above/Below carry it explicitly instead.
type AgentOptions struct {
	Neighbourhood                              float32
	AvoidanceTimeHorizon                       float32
	ObstacleAvoidanceTimeHorizon                float32
	ReachedDestinationAvoidanceResponsibility  float32
	PointSampleHorizontal                      float32
	PointSampleBelow                           float32
	PointSampleAbove                           float32
}

func (c AgentOptions) toEngine() archipelago.AgentOptions {
	return archipelago.AgentOptions{
		Neighbourhood:                c.Neighbourhood,
		AvoidanceTimeHorizon:         c.AvoidanceTimeHorizon,
		ObstacleAvoidanceTimeHorizon: c.ObstacleAvoidanceTimeHorizon,
		ReachedDestinationAvoidanceResponsibility: c.ReachedDestinationAvoidanceResponsibility,
		PointSampleDistance: navmesh.PointSampleDistance3D{
			Horizontal: c.PointSampleHorizontal,
			Below:      c.PointSampleBelow,
			Above:      c.PointSampleAbove,
		},
	}
}

func fromEngine(o archipelago.AgentOptions) AgentOptions {
	return AgentOptions{
		Neighbourhood:                o.Neighbourhood,
		AvoidanceTimeHorizon:         o.AvoidanceTimeHorizon,
		ObstacleAvoidanceTimeHorizon: o.ObstacleAvoidanceTimeHorizon,
		ReachedDestinationAvoidanceResponsibility: o.ReachedDestinationAvoidanceResponsibility,
		PointSampleHorizontal:                     o.PointSampleDistance.Horizontal,
		PointSampleBelow:                          o.PointSampleDistance.Below,
		PointSampleAbove:                          o.PointSampleDistance.Above,
	}
}

// Default returns the YAML-serializable form of
// archipelago.DefaultAgentOptions(agentRadius), for Write to dump as a
// prefilled settings file.
func Default(agentRadius float32) AgentOptions {
	return fromEngine(archipelago.DefaultAgentOptions(agentRadius))
}

// Load reads path as YAML and returns the decoded AgentOptions.
func Load(path string) (archipelago.AgentOptions, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return archipelago.AgentOptions{}, fmt.Errorf("config: %w", err)
	}
	var c AgentOptions
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return archipelago.AgentOptions{}, fmt.Errorf("config: %w", err)
	}
	return c.toEngine(), nil
}

// Write marshals opts as YAML to path, overwriting any existing file.
func Write(path string, opts AgentOptions) error {
	buf, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, buf, 0o644)
}
