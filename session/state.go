package session

// State is a step of the sample workflow.
type State int

const (
	Idle State = iota
	DirectorySetup
	PumpPriming
	CollectionActive
	CollectionWinding
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DirectorySetup:
		return "directory_setup"
	case PumpPriming:
		return "pump_priming"
	case CollectionActive:
		return "collection_active"
	case CollectionWinding:
		return "collection_winding"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == Done || s == Aborted
}
