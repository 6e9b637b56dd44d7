package door

import "fmt"

// Built-in scenario presets matching the three official game scenarios.
// Targets, frequencies and correlations are the advertised values from the
// game API; each returns a valid ScenarioSpec ready for play or simulation.

// ScenarioFirstFriday is the 2-attribute scenario: a young, well-dressed
// crowd with weakly coupled attributes.
func ScenarioFirstFriday() *ScenarioSpec {
	return &ScenarioSpec{
		Name: "first-friday",
		Constraints: []ConstraintSpec{
			{Attribute: "young", MinCount: 600},
			{Attribute: "well_dressed", MinCount: 600},
		},
		Statistics: &StatisticsSpec{
			RelativeFrequencies: map[string]float64{
				"young":        0.323,
				"well_dressed": 0.323,
			},
			Correlations: map[string]map[string]float64{
				"young": {"well_dressed": 0.183},
			},
		},
	}
}

// ScenarioClubNight is the 4-attribute scenario. creative is the rarest
// attribute (6.2%); techno_lover and berlin_local are strongly negatively
// correlated, so dual carriers are prized.
func ScenarioClubNight() *ScenarioSpec {
	return &ScenarioSpec{
		Name: "club-night",
		Constraints: []ConstraintSpec{
			{Attribute: "techno_lover", MinCount: 650},
			{Attribute: "well_connected", MinCount: 450},
			{Attribute: "creative", MinCount: 300},
			{Attribute: "berlin_local", MinCount: 750},
		},
		Statistics: &StatisticsSpec{
			RelativeFrequencies: map[string]float64{
				"techno_lover":   0.627,
				"well_connected": 0.470,
				"creative":       0.062,
				"berlin_local":   0.398,
			},
			Correlations: map[string]map[string]float64{
				"techno_lover": {
					"berlin_local":   -0.655,
					"well_connected": -0.470,
					"creative":       0.094,
				},
				"well_connected": {
					"berlin_local": 0.572,
					"creative":     0.142,
				},
				"creative": {
					"berlin_local": 0.100,
				},
			},
		},
	}
}

// ScenarioExclusiveNight is the 6-attribute scenario. queer_friendly and
// vinyl_collector sit under 5% frequency; international and german_speaker
// are close to mutually exclusive.
func ScenarioExclusiveNight() *ScenarioSpec {
	return &ScenarioSpec{
		Name: "exclusive-night",
		Constraints: []ConstraintSpec{
			{Attribute: "underground_veteran", MinCount: 500},
			{Attribute: "international", MinCount: 650},
			{Attribute: "fashion_forward", MinCount: 550},
			{Attribute: "queer_friendly", MinCount: 250},
			{Attribute: "vinyl_collector", MinCount: 200},
			{Attribute: "german_speaker", MinCount: 800},
		},
		Statistics: &StatisticsSpec{
			RelativeFrequencies: map[string]float64{
				"underground_veteran": 0.679,
				"international":       0.574,
				"fashion_forward":     0.691,
				"queer_friendly":      0.046,
				"vinyl_collector":     0.045,
				"german_speaker":      0.457,
			},
			Correlations: map[string]map[string]float64{
				"international": {
					"german_speaker": -0.717,
				},
				"fashion_forward": {
					"german_speaker":      -0.352,
					"underground_veteran": -0.170,
				},
				"queer_friendly": {
					"vinyl_collector": 0.480,
				},
			},
		},
	}
}

// scenarioPresets maps preset names to their constructors.
var scenarioPresets = map[string]func() *ScenarioSpec{
	"first-friday":    ScenarioFirstFriday,
	"club-night":      ScenarioClubNight,
	"exclusive-night": ScenarioExclusiveNight,
}

// ScenarioPreset returns the named built-in scenario.
func ScenarioPreset(name string) (*ScenarioSpec, error) {
	ctor, ok := scenarioPresets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario preset %q; valid: first-friday, club-night, exclusive-night", name)
	}
	return ctor(), nil
}
