package axis

import "github.com/Faultbox/xgraphix/pkg/math"

// Ground grid defaults. The grid keeps a fixed world size so changing the
// domain never rescales the reference plane.
const (
	DefaultGridSize      = 8.0
	DefaultGridDivisions = 10
)

// Line colors.
var (
	ColorAxisX      = [3]float32{1, 0, 0}
	ColorAxisY      = [3]float32{0, 1, 0}
	ColorAxisZ      = [3]float32{0, 0, 1}
	ColorNegative   = [3]float32{0, 0, 0}
	ColorGridCenter = [3]float32{0.8, 0.8, 0.8}
	ColorGridLine   = [3]float32{0.533, 0.533, 0.533}
)

// Segment is a colored line in scene space.
type Segment struct {
	From, To math.Vec3
	Color    [3]float32
}

// Grid is the ground-plane grid on z = 0.
type Grid struct {
	Lines     []Segment
	Size      float64
	Divisions int
	Visible   bool
}

// NewGrid builds a square grid centered on the origin in the z = 0 floor
// of the Z-up scene.
func NewGrid(size float64, divisions int, visible bool) *Grid {
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2
	step := size / float64(divisions)
	lines := make([]Segment, 0, 2*(divisions+1))

	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		c := ColorGridLine
		if 2*i == divisions {
			c = ColorGridCenter
		}
		// Line parallel to Y, then parallel to X.
		lines = append(lines,
			Segment{From: math.Vec3{X: k, Y: -half}, To: math.Vec3{X: k, Y: half}, Color: c},
			Segment{From: math.Vec3{X: -half, Y: k}, To: math.Vec3{X: half, Y: k}, Color: c},
		)
	}

	return &Grid{
		Lines:     lines,
		Size:      size,
		Divisions: divisions,
		Visible:   visible,
	}
}

// buildAxes returns the three axes: colored on the positive half and black
// on the negative half.
func buildAxes(length float64) []Segment {
	var origin math.Vec3
	return []Segment{
		{From: origin, To: math.Vec3{X: length}, Color: ColorAxisX},
		{From: origin, To: math.Vec3{Y: length}, Color: ColorAxisY},
		{From: origin, To: math.Vec3{Z: length}, Color: ColorAxisZ},
		{From: origin, To: math.Vec3{X: -length}, Color: ColorNegative},
		{From: origin, To: math.Vec3{Y: -length}, Color: ColorNegative},
		{From: origin, To: math.Vec3{Z: -length}, Color: ColorNegative},
	}
}
