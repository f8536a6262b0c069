package types

// Registry maps type names onto type identifiers for one compilation. The
// primitive names are registered up front; structure definitions claim
// fresh identifiers as the semantic pass lowers them.
type Registry struct {
	byName        map[string]TypeID
	names         map[TypeID]string
	nextStructure TypeID
}

// NewRegistry creates a registry pre-populated with the primitive types.
func NewRegistry() *Registry {
	r := &Registry{
		byName:        make(map[string]TypeID),
		names:         make(map[TypeID]string),
		nextStructure: FirstStructureType,
	}

	for name, id := range map[string]TypeID{
		"integer":    Integer32,
		"real":       Real32,
		"boolean":    Boolean,
		"string":     String,
		"identifier": Identifier,
	} {
		r.Register(name, id)
	}
	return r
}

// Register binds a name to a type identifier. Re-registering the same pair
// is a no-op; rebinding a name to a different type wins, matching the
// shadowing behavior of later definitions.
func (r *Registry) Register(name string, id TypeID) {
	r.byName[name] = id
	r.names[id] = name
}

// AllocateStructure claims a fresh structure type identifier for a name.
func (r *Registry) AllocateStructure(name string) TypeID {
	id := r.nextStructure
	r.nextStructure++
	r.Register(name, id)
	return id
}

// AllocateNamed claims a fresh identifier from the dynamic range for a
// named type that is not a structure: strong aliases and sum types. They
// share the structure range; what distinguishes them is the program-side
// metadata keyed by the identifier.
func (r *Registry) AllocateNamed(name string) TypeID {
	return r.AllocateStructure(name)
}

// Lookup resolves a type name. The second result reports whether the name
// is known.
func (r *Registry) Lookup(name string) (TypeID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameOf returns the registered name for a type identifier, falling back
// to the identifier's own rendering for unregistered values.
func (r *Registry) NameOf(id TypeID) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return id.String()
}
