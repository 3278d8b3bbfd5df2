package confstore

// Outcome classifies what a SetByPath call did to the file.
type Outcome int

const (
	// Modified means an existing active line had its value rewritten.
	Modified Outcome = iota
	// Commented means an existing active line was commented out.
	Commented
	// Appended means a new line was added at the end of the file.
	Appended
)

func (o Outcome) String() string {
	switch o {
	case Modified:
		return "modified"
	case Commented:
		return "commented"
	case Appended:
		return "appended"
	default:
		return "unknown"
	}
}
