package domain

// Kind identifies the widget a Node describes.
type Kind string

// Node kinds recognized by the renderer. The names match the "type" field of
// the JSON dump so snapshots stay readable next to the source that produced them.
const (
	KindFormLayout    Kind = "formLayout"
	KindTextField     Kind = "textField"
	KindDropdownField Kind = "dropdownField"
	KindButton        Kind = "buttonWidget"
)

// Property keys shared by constructors, renderer and decoders.
const (
	PropLabel    = "label"
	PropContents = "contents"
	PropValue    = "value"
	PropChoices  = "choices"
	PropSaveInto = "saveInto"
)

// Known reports whether k is one of the recognized widget kinds.
func (k Kind) Known() bool {
	switch k {
	case KindFormLayout, KindTextField, KindDropdownField, KindButton:
		return true
	}
	return false
}

// Limits on a document accepted for evaluation.
const (
	MaxSourceSize   = 64 << 10
	MaxNestingDepth = 200
)
