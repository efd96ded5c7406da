package rewrite

// Markers names the functions whose calls are left in rewritten
// components for the template renderer.
type Markers struct {
	Value   string // value marker: (kind, name, ctx)
	List    string // list marker: ('open'|'close', name, ctx)
	Control string // control marker: ([statementType, 'open'|'close'], args, ctx)
}

// Options configures a rewrite. The zero value is completed with the
// defaults from DefaultOptions.
type Options struct {
	Markers Markers

	// DescriptorProperty is the static property that carries the
	// descriptor list, as in Card.templateVars = [...].
	DescriptorProperty string

	// ContextAttribute is the prop through which components receive
	// their render context.
	ContextAttribute string

	// ValueAttributePrefix prefixes the duplicate of a text input's value
	// attribute.
	ValueAttributePrefix string

	// RepeatMethods are the call names that mark a repeat boundary.
	RepeatMethods []string

	// RootContext initializes the context when no parent supplies one.
	RootContext int

	Reporter Reporter
}

// DefaultOptions returns the standard marker names and attributes.
func DefaultOptions() Options {
	return Options{
		Markers: Markers{
			Value:   "__templateValue",
			List:    "__templateList",
			Control: "__templateControl",
		},
		DescriptorProperty:   "templateVars",
		ContextAttribute:     "__context__",
		ValueAttributePrefix: "data-template-",
		RepeatMethods:        []string{"map"},
		Reporter:             Discard,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Markers.Value == "" {
		o.Markers.Value = d.Markers.Value
	}
	if o.Markers.List == "" {
		o.Markers.List = d.Markers.List
	}
	if o.Markers.Control == "" {
		o.Markers.Control = d.Markers.Control
	}
	if o.DescriptorProperty == "" {
		o.DescriptorProperty = d.DescriptorProperty
	}
	if o.ContextAttribute == "" {
		o.ContextAttribute = d.ContextAttribute
	}
	if o.ValueAttributePrefix == "" {
		o.ValueAttributePrefix = d.ValueAttributePrefix
	}
	if len(o.RepeatMethods) == 0 {
		o.RepeatMethods = d.RepeatMethods
	}
	if o.Reporter == nil {
		o.Reporter = Discard
	}
	return o
}
