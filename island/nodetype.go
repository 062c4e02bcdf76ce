package island

import "fmt"

// NewNodeTypeError is returned by a node-type registry when a caller tries
// to register a non-positive cost multiplier (spec.md §6).
type NewNodeTypeError struct{ Cost float32 }

func (e *NewNodeTypeError) Error() string {
	return fmt.Sprintf("island: node type cost must be positive, got %g", e.Cost)
}

// SetNodeTypeCostErrorKind distinguishes the two ways updating a node
// type's cost can fail.
type SetNodeTypeCostErrorKind int

const (
	NonPositiveCost SetNodeTypeCostErrorKind = iota
	UnknownNodeType
)

type SetNodeTypeCostError struct {
	Kind SetNodeTypeCostErrorKind
	Cost float32
}

func (e *SetNodeTypeCostError) Error() string {
	switch e.Kind {
	case NonPositiveCost:
		return fmt.Sprintf("island: node type cost must be positive, got %g", e.Cost)
	default:
		return "island: unknown node type"
	}
}

// RemoveNodeTypeError is returned when a node type cannot be dropped
// because a live island still maps one of its type indices to it.
type RemoveNodeTypeError struct{}

func (e *RemoveNodeTypeError) Error() string {
	return "island: node type is still referenced by a live island"
}

// NodeTypes is the archipelago-owned registry mapping NodeType -> cost
// multiplier (meters-cost-per-meter-travelled), per spec.md §3. A type
// index not mapped by an island falls through to the default cost 1.0.
type NodeTypes struct {
	costs map[NodeType]float32
}

func NewNodeTypes() *NodeTypes {
	return &NodeTypes{costs: make(map[NodeType]float32)}
}

// DefaultCost is the cost multiplier used when a polygon's type index is
// not mapped by its island, per spec.md §4.3.
const DefaultCost float32 = 1.0

func (nt *NodeTypes) Add(cost float32) (NodeType, error) {
	if cost <= 0 {
		return NodeType{}, &NewNodeTypeError{Cost: cost}
	}
	id := NewNodeType()
	nt.costs[id] = cost
	return id, nil
}

func (nt *NodeTypes) SetCost(id NodeType, cost float32) error {
	if cost <= 0 {
		return &SetNodeTypeCostError{Kind: NonPositiveCost, Cost: cost}
	}
	if _, ok := nt.costs[id]; !ok {
		return &SetNodeTypeCostError{Kind: UnknownNodeType}
	}
	nt.costs[id] = cost
	return nil
}

func (nt *NodeTypes) Cost(id NodeType) (float32, bool) {
	c, ok := nt.costs[id]
	return c, ok
}

// Remove drops id from the registry unless referenced is true, in which
// case the caller (the archipelago, which knows about live islands) has
// asked the registry to refuse per spec.md §3/§6.
func (nt *NodeTypes) Remove(id NodeType, referenced bool) error {
	if referenced {
		return &RemoveNodeTypeError{}
	}
	delete(nt.costs, id)
	return nil
}
