package structure

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a node of the object graph.
type Kind int

const (
	_ Kind = iota // skip zero value, an uninitialized node has no kind

	KindLeaf  // scalar value
	KindNamed // ordered named fields
	KindList  // ordered sequence of uniformly typed nodes

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)
