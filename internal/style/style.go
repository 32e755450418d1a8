// Package style holds the small fixed color palette the emitter draws
// with. There is no theming system — every color here is the one the
// reference design names for its visual class.
package style

// Palette is the complete, non-overridable set of colors the emitter uses.
type Palette struct {
	HeadFill     string
	HeadStroke   string
	LifelineLine string
	ArrowLine    string
	ActivationFill   string
	ActivationStroke string
	NoteFill     string
	NoteStroke   string
	TextColor    string
}

// Default is the only Palette this renderer produces.
func Default() Palette {
	return Palette{
		HeadFill:         "none",
		HeadStroke:       "#000",
		LifelineLine:     "#000",
		ArrowLine:        "#000",
		ActivationFill:   "#ddd",
		ActivationStroke: "#333",
		NoteFill:         "#ddd",
		NoteStroke:       "#333",
		TextColor:        "#000",
	}
}
