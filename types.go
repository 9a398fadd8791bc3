package hybrid

// DefaultInlineCapacity is the inline capacity used by a zero Vector.
const DefaultInlineCapacity = 8

// Mode identifies which storage representation currently holds the elements.
type Mode uint8

const (
	// Inline means elements live in the fixed block of InlineCap slots.
	Inline Mode = iota
	// Heap means elements live in a separately allocated, growable buffer.
	Heap
)

func (m Mode) String() string {
	switch m {
	case Inline:
		return "inline"
	case Heap:
		return "heap"
	default:
		return "unknown"
	}
}

// Vector is a sequence that keeps its first InlineCap elements in a fixed
// block and migrates to heap storage once it holds more. It migrates back as
// soon as removals bring it to InlineCap elements or fewer.
//
// The zero value is an empty vector with DefaultInlineCapacity. A Vector is
// not safe for concurrent use, and references returned by Ref must not be
// used across mutating calls.
type Vector[T any] struct {
	_ [0]func() // Make the type incomparable.

	n     int
	size  int
	store storage[T]
	// spare is the retired inline block while heap-backed. It never holds
	// live elements.
	spare []T
	cfg   config[T]
}

// Stats is a point-in-time view of a vector's shape.
type Stats struct {
	Size           int  `json:"size" yaml:"size"`
	Capacity       int  `json:"capacity" yaml:"capacity"`
	InlineCapacity int  `json:"inline_capacity" yaml:"inline_capacity"`
	Mode           Mode `json:"mode" yaml:"mode"`
}

// Inline reports whether the stats were taken while inline-backed.
func (s Stats) Inline() bool {
	return s.Mode == Inline
}

// Map exposes the stats as an expression binding.
func (s Stats) Map() map[string]any {
	return map[string]any{
		"size":            int64(s.Size),
		"capacity":        int64(s.Capacity),
		"inline_capacity": int64(s.InlineCapacity),
		"inline":          s.Mode == Inline,
		"mode":            s.Mode.String(),
	}
}

// Cloner is implemented by element types that know how to deep copy
// themselves. Clone and Assign use it when no copier is configured.
type Cloner[T any] interface {
	Clone() T
}
