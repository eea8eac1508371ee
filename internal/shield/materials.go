package shield

import "fmt"

// Material describes a shielding medium. Either MuMass (cm^2/g, with
// Density) or MuLin (1/cm) must be set; coefficients are illustrative values
// for ~1 MeV gammas.
type Material struct {
	Name    string
	Density float64 // g/cm^3
	MuMass  float64 // mass attenuation coefficient (cm^2/g)
	MuLin   float64 // linear attenuation coefficient (1/cm)
}

// LinearMu returns the linear attenuation coefficient, deriving it from the
// mass coefficient when not given directly.
func (m Material) LinearMu() (float64, error) {
	if m.MuLin > 0 {
		return m.MuLin, nil
	}
	if m.MuMass > 0 && m.Density > 0 {
		return m.MuMass * m.Density, nil
	}
	return 0, fmt.Errorf("material %s: need MuLin or (MuMass and Density)", m.Name)
}

// Builtin materials, keyed by lowercase name.
var Materials = map[string]Material{
	"lead":     {Name: "Lead", Density: 11.34, MuMass: 0.044},
	"concrete": {Name: "Concrete", Density: 2.3, MuMass: 0.035},
	"water":    {Name: "Water", Density: 1.0, MuMass: 0.034},
	"steel":    {Name: "Steel", Density: 7.8, MuLin: 0.12},
}

// Lookup returns a builtin material by name.
func Lookup(name string) (Material, error) {
	m, ok := Materials[name]
	if !ok {
		return Material{}, fmt.Errorf("unknown material: %s", name)
	}
	return m, nil
}

// Names lists the builtin material keys.
func Names() []string {
	names := make([]string, 0, len(Materials))
	for name := range Materials {
		names = append(names, name)
	}
	return names
}
