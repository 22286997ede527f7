package component

// Name is the script-facing identity of a character. It is unique among the
// live characters of a scene.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
