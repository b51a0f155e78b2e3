package layout

import "fmt"

// gapID derives a deterministic identifier for the gap after the i-th real
// child of the given parent. Re-running gap insertion on an unchanged tree
// yields identical IDs, which incremental renderers rely on for diffing.
// If the base ID collides with a real node ID, a numeric suffix is appended
// until it is free.
func gapID(parentKey string, index int, realIDs map[string]struct{}) string {
	id := fmt.Sprintf("%s__gap_%d", parentKey, index)
	if _, exists := realIDs[id]; !exists {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s__%d", id, n)
		if _, exists := realIDs[candidate]; !exists {
			return candidate
		}
	}
}

// rootGapKey is the parent key used for gaps between root sectors, which
// have no parent node to derive an ID from.
const rootGapKey = "__root"

// spliceGaps interleaves synthetic gap sectors into the holes between
// consecutive placed children. The children are expected to have been
// partitioned with a reserved gap, so each hole is exactly the space between
// one child's end and the next child's start; gap ranges are derived from
// those bounds rather than the nominal gap width, keeping the group an exact
// tiling of the parent interval.
func spliceGaps(parentKey string, children []*PlacedNode, depth int, inner, outer float64, realIDs map[string]struct{}) []*PlacedNode {
	if len(children) < 2 {
		return children
	}
	out := make([]*PlacedNode, 0, 2*len(children)-1)
	for i, c := range children {
		if i > 0 {
			prev := children[i-1]
			out = append(out, &PlacedNode{
				ID:          gapID(parentKey, i-1, realIDs),
				StartAngle:  prev.EndAngle(),
				AngleRange:  c.StartAngle - prev.EndAngle(),
				InnerRadius: inner,
				OuterRadius: outer,
				Depth:       depth,
				IsGap:       true,
			})
		}
		out = append(out, c)
	}
	return out
}

// InsertGaps returns a copy of the placed subtree with gap sectors spliced
// between real siblings at every level where the configuration applies
// (gaps enabled and at least MinChildrenForGap real children). Real sectors
// shrink proportionally to make room, and their descendants are remapped
// into the shrunk intervals, preserving relative proportions throughout the
// subtree. The input is never modified.
//
// Levels where the reserved gaps would exceed the node's range are left
// ungapped rather than collapsed; [Build] reports that situation as a
// diagnostic when it arises during a full layout.
func InsertGaps(p *PlacedNode, cfg Config) *PlacedNode {
	if p == nil {
		return nil
	}
	cfg.SetDefaults()
	return insertGaps(p, cfg, realIDSet(p))
}

func insertGaps(p *PlacedNode, cfg Config, realIDs map[string]struct{}) *PlacedNode {
	cp := *p
	real := p.RealChildren()
	if len(real) == 0 {
		cp.Children = nil
		return &cp
	}

	gap := cfg.GapAngle()
	k := len(real)
	available := p.AngleRange - gap*float64(k-1)
	if !cfg.gapsApply(k) || available <= 0 {
		children := make([]*PlacedNode, k)
		for i, c := range real {
			children[i] = insertGaps(c, cfg, realIDs)
		}
		cp.Children = children
		return &cp
	}

	var sum float64
	for _, c := range real {
		sum += c.AngleRange
	}

	children := make([]*PlacedNode, k)
	cursor := p.StartAngle
	for i, c := range real {
		r := available * c.AngleRange / sum
		if i == k-1 {
			r = p.EndAngle() - cursor
		}
		children[i] = insertGaps(remapAngles(c, cursor, r), cfg, realIDs)
		cursor += r + gap
	}

	cp.Children = spliceGaps(p.ID, children, real[0].Depth, real[0].InnerRadius, real[0].OuterRadius, realIDs)
	return &cp
}

// RemoveGaps returns a copy of the placed subtree with gap sectors removed
// and the remaining siblings re-normalized to fill the freed space. This is
// the inverse of [InsertGaps] up to floating-point tolerance: removing the
// gaps recovers the proportional layout the same tree produces with gaps
// disabled. The input is never modified.
func RemoveGaps(p *PlacedNode) *PlacedNode {
	if p == nil {
		return nil
	}
	cp := *p
	real := p.RealChildren()
	if len(real) == 0 {
		cp.Children = nil
		return &cp
	}

	var sum float64
	for _, c := range real {
		sum += c.AngleRange
	}

	children := make([]*PlacedNode, len(real))
	cursor := p.StartAngle
	for i, c := range real {
		r := p.AngleRange * c.AngleRange / sum
		if i == len(real)-1 {
			r = p.EndAngle() - cursor
		}
		children[i] = RemoveGaps(remapAngles(c, cursor, r))
		cursor += r
	}

	cp.Children = children
	return &cp
}

// remapAngles returns a copy of the subtree with its angular interval
// affinely mapped onto [newStart, newStart+newRange). Descendant angles keep
// their relative position within the moved interval; radii and depths are
// untouched.
func remapAngles(p *PlacedNode, newStart, newRange float64) *PlacedNode {
	scale := 0.0
	if p.AngleRange > 0 {
		scale = newRange / p.AngleRange
	}

	var remap func(n *PlacedNode) *PlacedNode
	remap = func(n *PlacedNode) *PlacedNode {
		cp := *n
		cp.StartAngle = newStart + (n.StartAngle-p.StartAngle)*scale
		cp.AngleRange = n.AngleRange * scale
		if n.Children != nil {
			cp.Children = make([]*PlacedNode, len(n.Children))
			for i, c := range n.Children {
				cp.Children[i] = remap(c)
			}
		}
		return &cp
	}
	return remap(p)
}

// realIDSet collects the IDs of all real (non-gap) sectors in the subtree,
// used to keep synthetic gap IDs collision-free.
func realIDSet(p *PlacedNode) map[string]struct{} {
	ids := make(map[string]struct{})
	WalkPlaced([]*PlacedNode{p}, func(n *PlacedNode) bool {
		if !n.IsGap {
			ids[n.ID] = struct{}{}
		}
		return true
	})
	return ids
}
