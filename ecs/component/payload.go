package component

// Payload is opaque per-behavior state attached to a character.
type Payload struct {
	Value any
}

var PayloadComponent = NewComponent[Payload]()
