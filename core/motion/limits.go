package motion

import (
	"math"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/dimen"
	"github.com/npillmayer/pentype/core/option"
	"golang.org/x/image/math/f64"
)

// CheckLimits verifies that every coordinate given in p lies inside r.
// The first violation is reported as an error with code core.EOUTOFBOUNDS.
// Coordinates are not corrected.
func (p Program) CheckLimits(r dimen.Rect) error {
	for i, c := range p {
		if !c.Op.IsPositional() {
			continue
		}
		if x := c.X; !x.IsNone() && (x.Unwrap() < float64(r.Min.X) || x.Unwrap() > float64(r.Max.X)) {
			return core.Error(core.EOUTOFBOUNDS, "command %d (%s): X coordinate %s out of limits [%g,%g]",
				i, c, x, float64(r.Min.X), float64(r.Max.X))
		}
		if y := c.Y; !y.IsNone() && (y.Unwrap() < float64(r.Min.Y) || y.Unwrap() > float64(r.Max.Y)) {
			return core.Error(core.EOUTOFBOUNDS, "command %d (%s): Y coordinate %s out of limits [%g,%g]",
				i, c, y, float64(r.Min.Y), float64(r.Max.Y))
		}
	}
	return nil
}

// Bounds returns the bounding box of all tool positions of p, with curves
// flattened to the given precision. The origin (start position) is included.
func (p Program) Bounds(precision float64) dimen.Rect {
	lo := f64.Vec2{math.Inf(1), math.Inf(1)}
	hi := f64.Vec2{math.Inf(-1), math.Inf(-1)}
	extend := func(q f64.Vec2) {
		lo[0], lo[1] = math.Min(lo[0], q[0]), math.Min(lo[1], q[1])
		hi[0], hi[1] = math.Max(hi[0], q[0]), math.Max(hi[1], q[1])
	}
	extend(f64.Vec2{})
	p.Flatten(precision).Walk(func(_ int, _ f64.Vec2, _ Command, to f64.Vec2) {
		extend(to)
	})
	return dimen.Rect{
		Min: dimen.Point{X: dimen.Dimen(lo[0]), Y: dimen.Dimen(lo[1])},
		Max: dimen.Point{X: dimen.Dimen(hi[0]), Y: dimen.Dimen(hi[1])},
	}
}

// SplitPages splits p at its page breaks. The page breaks themselves are not
// part of the pages. A program with n page breaks results in n+1 pages.
func (p Program) SplitPages() []Program {
	pages := []Program{{}}
	for _, c := range p {
		if c.Op == OpPageBreak {
			pages = append(pages, Program{})
			continue
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], c)
	}
	return pages
}

// AddFeedRate sets feed rate f on every drawing command which does not
// already carry one.
func (p Program) AddFeedRate(f float64) Program {
	out := p.Clone()
	for i, c := range out {
		if (c.Op == OpLine || c.Op == OpArc || c.Op == OpCurve) && c.Feed.IsNone() {
			out[i].Feed = option.SomeFloat64(f)
		}
	}
	return out
}
