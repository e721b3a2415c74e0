package document

// Extension registers a third-party schema extension with the document.
// Extensions are graph participants like everything else: they hang off the
// Root collection and carry their payload in Extras. The extension name is
// the reconciliation key during merge - two documents declaring the same
// extension share one participant in the merged result.
type Extension struct {
	property

	extensionName string
	required      bool
}

func (e *Extension) Type() PropertyType    { return TypeExtension }
func (e *Extension) relations() []relation { return nil }

// ExtensionName returns the registered extension identifier
// (e.g. "KHR_materials_unlit").
func (e *Extension) ExtensionName() string { return e.extensionName }

// Required reports whether loaders must understand the extension to use
// the asset.
func (e *Extension) Required() bool { return e.required }

// SetRequired marks the extension as required.
func (e *Extension) SetRequired(v bool) *Extension {
	e.required = v
	return e
}

func (e *Extension) equalsData(other Property) bool {
	o, ok := other.(*Extension)
	if !ok {
		return false
	}
	return e.extensionName == o.extensionName && e.required == o.required
}

func (e *Extension) copyData(other Property) {
	o := other.(*Extension)
	e.extensionName = o.extensionName
	// Required is sticky: merge reuses one registration per extension name,
	// and an extension required by either document is required by the union.
	e.required = e.required || o.required
}
