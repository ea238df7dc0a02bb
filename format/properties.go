package format

// Property is a standard metadata key with dialect-specific spellings.
type Property struct {
	// ID is the dialect-neutral key visitors receive.
	ID string

	names map[Format]string
}

// NameFor returns the spelling of p in f.
func (p Property) NameFor(f Format) (string, bool) {
	name, ok := p.names[f]

	return name, ok
}

// AppliesTo reports whether f can store p.
func (p Property) AppliesTo(f Format) bool {
	_, ok := p.names[f]

	return ok
}

var (
	NextIntermediaryClass = Property{ID: "next-intermediary-class", names: map[Format]string{
		TinyFile:  "INTERMEDIARY_COUNTER class",
		Tiny2File: "next-intermediary-class",
	}}
	NextIntermediaryField = Property{ID: "next-intermediary-field", names: map[Format]string{
		TinyFile:  "INTERMEDIARY_COUNTER field",
		Tiny2File: "next-intermediary-field",
	}}
	NextIntermediaryMethod = Property{ID: "next-intermediary-method", names: map[Format]string{
		TinyFile:  "INTERMEDIARY_COUNTER method",
		Tiny2File: "next-intermediary-method",
	}}
	NextIntermediaryComponent = Property{ID: "next-intermediary-component", names: map[Format]string{
		TinyFile:  "INTERMEDIARY_COUNTER component",
		Tiny2File: "next-intermediary-component",
	}}
	MissingLvtIndices = Property{ID: "missing-lvt-indices", names: map[Format]string{
		Tiny2File: "missing-lvt-indices",
	}}
	EscapedNames = Property{ID: "escaped-names", names: map[Format]string{
		Tiny2File: "escaped-names",
	}}
)

// Properties returns all standard properties.
func Properties() []Property {
	return []Property{
		NextIntermediaryClass,
		NextIntermediaryField,
		NextIntermediaryMethod,
		NextIntermediaryComponent,
		MissingLvtIndices,
		EscapedNames,
	}
}

// PropertyByID looks a property up by its dialect-neutral ID.
func PropertyByID(id string) (Property, bool) {
	for _, p := range Properties() {
		if p.ID == id {
			return p, true
		}
	}

	return Property{}, false
}

// PropertyByName looks a property up by any of its dialect spellings.
func PropertyByName(name string) (Property, bool) {
	for _, p := range Properties() {
		for _, n := range p.names {
			if n == name {
				return p, true
			}
		}
	}

	return Property{}, false
}
