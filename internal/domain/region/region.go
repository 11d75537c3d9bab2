// Package region models the optional cropped-region constraint of a
// visual search query and the bounding-box math used to score
// region-level matches.
package region

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
)

// BBox is a rectangle in normalized image coordinates: x, y is the top-left
// corner, all values in [0,1], and x+width, y+height must not exceed 1.
type BBox struct {
	x      float64
	y      float64
	width  float64
	height float64
}

// New validates and creates a bounding box.
func New(x, y, width, height float64) (BBox, error) {
	if x < 0 || y < 0 || x > 1 || y > 1 {
		return BBox{}, fmt.Errorf("%w: bbox origin (%f, %f) out of [0,1]", domain.ErrInvalidRequest, x, y)
	}
	if width <= 0 || height <= 0 {
		return BBox{}, fmt.Errorf("%w: bbox size must be positive", domain.ErrInvalidRequest)
	}
	if x+width > 1 || y+height > 1 {
		return BBox{}, fmt.Errorf("%w: bbox extends beyond the image", domain.ErrInvalidRequest)
	}
	return BBox{x: x, y: y, width: width, height: height}, nil
}

// X returns the left edge.
func (b BBox) X() float64 { return b.x }

// Y returns the top edge.
func (b BBox) Y() float64 { return b.y }

// Width returns the box width.
func (b BBox) Width() float64 { return b.width }

// Height returns the box height.
func (b BBox) Height() float64 { return b.height }

// Area returns the box area.
func (b BBox) Area() float64 { return b.width * b.height }

// Intersection returns the overlapping area of two boxes, zero when disjoint.
func (b BBox) Intersection(o BBox) float64 {
	x1 := max(b.x, o.x)
	y1 := max(b.y, o.y)
	x2 := min(b.x+b.width, o.x+o.width)
	y2 := min(b.y+b.height, o.y+o.height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

// IoU returns intersection-over-union of two boxes.
func (b BBox) IoU(o BBox) float64 {
	inter := b.Intersection(o)
	union := b.Area() + o.Area() - inter
	if union == 0 {
		return 0
	}
	return inter / union
}
