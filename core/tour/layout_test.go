package tour

import "testing"

func TestPlaceTooltip(t *testing.T) {
	const (
		viewport = 800.0
		tooltip  = 150.0
		margin   = DefaultMargin
	)
	cases := []struct {
		name   string
		target Rect
		want   Placement
	}{
		{
			name:   "fits below",
			target: Rect{Top: 100, Left: 40, Width: 200, Height: 50},
			want:   Placement{Top: 160, Left: 40, Show: true},
		},
		{
			name:   "flips above near the bottom edge",
			target: Rect{Top: 700, Left: 40, Width: 200, Height: 50},
			want:   Placement{Top: 540, Left: 40, Above: true, Show: true},
		},
		{
			name:   "exactly enough space stays below",
			target: Rect{Top: 590, Left: 0, Width: 100, Height: 50},
			want:   Placement{Top: 650, Show: true},
		},
		{
			name:   "one pixel short flips above",
			target: Rect{Top: 591, Left: 0, Width: 100, Height: 50},
			want:   Placement{Top: 431, Above: true, Show: true},
		},
		{
			name:   "zero-width target renders nothing",
			target: Rect{Top: 100, Left: 40, Width: 0, Height: 50},
			want:   Placement{},
		},
		{
			name:   "zero-height target renders nothing",
			target: Rect{Top: 100, Left: 40, Width: 200, Height: 0},
			want:   Placement{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PlaceTooltip(tc.target, tooltip, viewport, margin)
			if got != tc.want {
				t.Fatalf("PlaceTooltip(%+v) = %+v, want %+v", tc.target, got, tc.want)
			}
		})
	}
}
