package perception

import "context"

// Frame is one captured image. Pixels are packed RGBA rows.
type Frame struct {
	Width  int
	Height int
	Pixels []byte
}

// Model estimates facial landmarks for a frame. An empty result means no face
// was found, which is not an error.
type Model interface {
	EstimateFaces(ctx context.Context, frame Frame) ([]Landmarks, error)
}

// FrameSource supplies frames to the sampler.
type FrameSource interface {
	Capture(ctx context.Context) (Frame, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(ctx context.Context, frame Frame) ([]Landmarks, error)

// EstimateFaces calls f.
func (f ModelFunc) EstimateFaces(ctx context.Context, frame Frame) ([]Landmarks, error) {
	return f(ctx, frame)
}
