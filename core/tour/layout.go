package tour

// Rect is a target element's bounding box in viewport coordinates, measured
// after the element has been scrolled into centered view.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is where the overlay tooltip goes relative to its target.
type Placement struct {
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Above bool    `json:"above"`
	Show  bool    `json:"show"`
}

// DefaultMargin is the gap kept between the target and the tooltip.
const DefaultMargin = 10.0

// PlaceTooltip prefers placement directly below the target; when the space
// between the target's bottom edge and the viewport's bottom edge cannot fit
// the tooltip plus the margin, it flips above. A zero-sized target means the
// element is not mounted yet and nothing should render.
func PlaceTooltip(target Rect, tooltipHeight, viewportHeight, margin float64) Placement {
	if target.Width == 0 || target.Height == 0 {
		return Placement{}
	}
	spaceBelow := viewportHeight - (target.Top + target.Height)
	if spaceBelow < tooltipHeight+margin {
		return Placement{
			Top:   target.Top - tooltipHeight - margin,
			Left:  target.Left,
			Above: true,
			Show:  true,
		}
	}
	return Placement{
		Top:  target.Top + target.Height + margin,
		Left: target.Left,
		Show: true,
	}
}
