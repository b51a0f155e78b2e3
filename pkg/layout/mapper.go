package layout

import "math"

// ScreenPoint is the representative screen position of a sector: the polar
// midpoint of its angular and radial extent, converted to Cartesian
// coordinates around the container center. Renderers use it for label
// anchors and focus animations.
type ScreenPoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	PixelRadius float64 `json:"pixelRadius"`
	MidAngle    float64 `json:"midAngle"`
}

// ToScreen maps a placed sector to its representative screen point inside a
// container of the given pixel size. The radial scale is min(width,height)/2
// so the full chart always fits the container's shorter axis. Y grows
// downward in screen coordinates, so increasing angles sweep clockwise,
// matching the authored sibling order.
func ToScreen(p *PlacedNode, width, height float64) ScreenPoint {
	cx := width / 2
	cy := height / 2
	scale := math.Min(width, height) / 2

	mid := p.MidAngle()
	r := p.MidRadius() * scale
	return ScreenPoint{
		X:           cx + math.Cos(mid)*r,
		Y:           cy + math.Sin(mid)*r,
		PixelRadius: r,
		MidAngle:    mid,
	}
}

// HitTest resolves a screen point to the placed sector under it, or nil when
// the point is outside the chart entirely. Gap sectors never match: a point
// inside a gap resolves to the nearest enclosing real sector, so nil is
// reserved for genuinely out-of-bounds points (beyond the chart radius, or
// inside a root-level gap where no enclosing sector exists).
//
// The search descends only while the point lies beyond the current sector's
// own ring; a point over a node's ring, or inside the center hole under it,
// resolves to that node. Angular containment is wraparound-aware, so sectors
// spanning the 2π/0 seam match correctly.
//
// HitTest is read-only and safe for concurrent callers sharing one placed
// forest snapshot.
func HitTest(x, y float64, roots []*PlacedNode, width, height float64) *PlacedNode {
	scale := math.Min(width, height) / 2
	if scale <= 0 {
		return nil
	}

	dx := x - width/2
	dy := y - height/2
	ratio := math.Hypot(dx, dy) / scale
	if ratio > 1 {
		return nil
	}
	angle := normalizeAngle(math.Atan2(dy, dx))

	return hitNode(roots, angle, ratio)
}

// hitNode finds the real sibling containing the angle and descends while the
// point is beyond that sibling's ring.
func hitNode(siblings []*PlacedNode, angle, ratio float64) *PlacedNode {
	for _, s := range siblings {
		if s == nil || s.IsGap {
			continue
		}
		if !angleContains(normalizeAngle(s.StartAngle), s.AngleRange, angle) {
			continue
		}
		if ratio >= s.OuterRadius {
			if deeper := hitNode(s.Children, angle, ratio); deeper != nil {
				return deeper
			}
		}
		return s
	}
	return nil
}
