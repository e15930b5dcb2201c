package models

// EntityKind discriminates the two catalog types ratings and comments can
// attach to.
type EntityKind string

const (
	KindGame    EntityKind = "game"
	KindConsole EntityKind = "console"
)

// Valid reports whether k is one of the known catalog kinds.
func (k EntityKind) Valid() bool {
	return k == KindGame || k == KindConsole
}
