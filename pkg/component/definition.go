package component

// Data is a string-keyed state mapping. A nil Data is the shared empty value:
// reads are valid and nothing is allocated until a key is written.
type Data = map[string]any

// Block is the opaque result of rendering a component.
type Block = any

// SetupFunc is a component setup function. It returns either a Data value,
// which becomes the instance's setup state, or a Block.
type SetupFunc func(props Data, ctx *SetupContext) any

// RenderFunc renders an object-form component from its setup state. It runs
// with the instance current, so Current and the hook registration functions
// are available.
type RenderFunc func(state Data) Block

// Prop declares one prop in a definition's schema.
type Prop struct {
	Name     string
	Default  any
	Required bool
}

// Definition is a resolved component definition: either *Functional or
// *Object. The set is closed.
type Definition interface {
	schema() definitionSchema
}

type definitionSchema struct {
	name               string
	props              []Prop
	emits              []string
	disableInheritance bool
}

// Functional is a component defined by a single setup function.
type Functional struct {
	Name  string
	Setup SetupFunc
	// Props is optional. A functional component without a props schema
	// receives every input as both props and attrs.
	Props []Prop
	Emits []string
	// DisableInheritAttrs keeps fallthrough attributes off the root of the
	// rendered output.
	DisableInheritAttrs bool
}

func (f *Functional) schema() definitionSchema {
	return definitionSchema{
		name:               f.Name,
		props:              f.Props,
		emits:              f.Emits,
		disableInheritance: f.DisableInheritAttrs,
	}
}

// Object is a component defined by an options object.
type Object struct {
	Name                string
	Props               []Prop
	Emits               []string
	DisableInheritAttrs bool
	Setup               SetupFunc
	Render              RenderFunc
}

func (o *Object) schema() definitionSchema {
	return definitionSchema{
		name:               o.Name,
		props:              o.Props,
		emits:              o.Emits,
		disableInheritance: o.DisableInheritAttrs,
	}
}

// IsObjectForm reports whether def is an *Object definition.
func IsObjectForm(def Definition) bool {
	_, ok := def.(*Object)
	return ok
}

// NameOf returns the definition's name, or "" for anonymous components.
func NameOf(def Definition) string {
	if def == nil {
		return ""
	}
	return def.schema().name
}
