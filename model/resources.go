package model

// Actor binds a geometry and an effect to a transform.
type Actor struct {
	Name      string
	Geometry  *Geometry
	Effect    *Effect
	Transform *Transform

	// NormalizeNormals is set when the world matrix has non-unit scale.
	NormalizeNormals bool
}

// Resources is the result of an import.
type Resources struct {
	Actors []*Actor
	// Root is nil when the hierarchy was flattened.
	Root *Transform

	// UpAxis and UnitMeter are copied from <asset>. The up axis is already
	// applied to the transforms; UnitMeter is not.
	UpAxis    string
	UnitMeter float32
}

func (r *Resources) Geometries() []*Geometry {
	seen := map[*Geometry]bool{}
	var list []*Geometry
	for _, a := range r.Actors {
		if a.Geometry != nil && !seen[a.Geometry] {
			seen[a.Geometry] = true
			list = append(list, a.Geometry)
		}
	}
	return list
}

func (r *Resources) Effects() []*Effect {
	seen := map[*Effect]bool{}
	var list []*Effect
	for _, a := range r.Actors {
		if a.Effect != nil && !seen[a.Effect] {
			seen[a.Effect] = true
			list = append(list, a.Effect)
		}
	}
	return list
}
