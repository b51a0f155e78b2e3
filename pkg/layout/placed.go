package layout

// PlacedNode is one sector of a computed sunburst layout. It mirrors the
// source node it was derived from (ID, Name, Value, Color pass through
// untouched) and adds the geometry assigned by the layout pass.
//
// Angles are radians with StartAngle in [0, 2π); radii are ratios of the
// container half-extent. A placed forest is created fresh by every layout
// pass and never mutated afterwards, so snapshots can be shared freely
// between rendering and hit-testing.
//
// Gap sectors carry IsGap=true, zero Value, and an empty Name. They separate
// real siblings visually, are never selectable, and own no children.
type PlacedNode struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	Value float64 `json:"value,omitempty" bson:"value,omitempty"`
	Color string  `json:"color,omitempty" bson:"color,omitempty"`

	StartAngle  float64 `json:"startAngle" bson:"startAngle"`
	AngleRange  float64 `json:"angleRange" bson:"angleRange"`
	InnerRadius float64 `json:"innerRadius" bson:"innerRadius"`
	OuterRadius float64 `json:"outerRadius" bson:"outerRadius"`
	Depth       int     `json:"depth" bson:"depth"`
	IsGap       bool    `json:"isGap,omitempty" bson:"isGap,omitempty"`

	Children []*PlacedNode `json:"children,omitempty" bson:"children,omitempty"`
}

// EndAngle returns the exclusive end of the sector's angular interval.
func (p *PlacedNode) EndAngle() float64 { return p.StartAngle + p.AngleRange }

// MidAngle returns the angular midpoint of the sector.
func (p *PlacedNode) MidAngle() float64 { return p.StartAngle + p.AngleRange/2 }

// MidRadius returns the radial midpoint of the sector's ring.
func (p *PlacedNode) MidRadius() float64 { return (p.InnerRadius + p.OuterRadius) / 2 }

// RealChildren returns the non-gap children in order. The returned slice is
// freshly allocated; the placed forest itself is not modified.
func (p *PlacedNode) RealChildren() []*PlacedNode {
	var real []*PlacedNode
	for _, c := range p.Children {
		if !c.IsGap {
			real = append(real, c)
		}
	}
	return real
}

// ClonePlaced returns a deep copy of the placed node and its subtree.
// Returns nil for a nil node.
func ClonePlaced(p *PlacedNode) *PlacedNode {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Children != nil {
		cp.Children = make([]*PlacedNode, len(p.Children))
		for i, c := range p.Children {
			cp.Children[i] = ClonePlaced(c)
		}
	}
	return &cp
}

// WalkPlaced visits every placed node in depth-first, children-in-order
// sequence. If fn returns false the subtree below that node is skipped.
func WalkPlaced(roots []*PlacedNode, fn func(p *PlacedNode) bool) {
	var visit func(p *PlacedNode)
	visit = func(p *PlacedNode) {
		if p == nil {
			return
		}
		if !fn(p) {
			return
		}
		for _, c := range p.Children {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}
}

// FindPlaced returns the placed node with the given ID, or nil. Gap sectors
// are searchable too; callers that only want real sectors should check IsGap.
func FindPlaced(roots []*PlacedNode, id string) *PlacedNode {
	var found *PlacedNode
	WalkPlaced(roots, func(p *PlacedNode) bool {
		if found != nil {
			return false
		}
		if p.ID == id {
			found = p
			return false
		}
		return true
	})
	return found
}
