package perception

import (
	"errors"
	"math"
)

// Point is a landmark position in frame pixel space.
type Point struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Landmarks is the index-addressable point set of one detected face.
type Landmarks []Point

// Indices selects which landmarks are used for steering and firing.
type Indices struct {
	LeftEar  int
	RightEar int
	UpperLip int
	LowerLip int
}

// DefaultIndices returns the ear and inner-lip positions of the 468-point
// face mesh topology.
func DefaultIndices() Indices {
	return Indices{
		LeftEar:  234,
		RightEar: 454,
		UpperLip: 13,
		LowerLip: 14,
	}
}

// Measurement holds the scale-free ratios derived from one face.
type Measurement struct {
	Tilt       float64 // Positive when the head leans toward the right side
	MouthGap   float64
	FaceHeight float64
}

// ErrBadLandmarks is returned when a face cannot be measured.
var ErrBadLandmarks = errors.New("perception: landmarks unusable")

// Measure derives tilt and mouth-gap ratios from a face, both normalized by
// the height of the bounding box of all points.
func Measure(lm Landmarks, idx Indices) (Measurement, error) {
	for _, i := range []int{idx.LeftEar, idx.RightEar, idx.UpperLip, idx.LowerLip} {
		if i < 0 || i >= len(lm) {
			return Measurement{}, ErrBadLandmarks
		}
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range lm {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	height := maxY - minY
	if !(height > 0) {
		return Measurement{}, ErrBadLandmarks
	}

	return Measurement{
		Tilt:       (lm[idx.LeftEar].Y - lm[idx.RightEar].Y) / height,
		MouthGap:   math.Abs(lm[idx.LowerLip].Y-lm[idx.UpperLip].Y) / height,
		FaceHeight: height,
	}, nil
}
