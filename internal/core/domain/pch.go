package domain

// PCHMode is the role of the precompiled header within one build invocation.
type PCHMode int

const (
	// PCHNotUsed means no precompiled header is configured.
	PCHNotUsed PCHMode = iota
	// PCHCreate means the artifact must be (re)generated from the header.
	PCHCreate
	// PCHUse means the artifact on disk is current and compiles include it.
	PCHUse
)

// String returns the mode name.
func (m PCHMode) String() string {
	switch m {
	case PCHCreate:
		return "create"
	case PCHUse:
		return "use"
	default:
		return "not-used"
	}
}

// PCHState is the precompiled header mode together with its paths. It is never persisted.
type PCHState struct {
	Mode     PCHMode
	Header   string
	Artifact string
}

// Active reports whether compiles must reference the precompiled header.
func (s PCHState) Active() bool {
	return s.Mode != PCHNotUsed
}
