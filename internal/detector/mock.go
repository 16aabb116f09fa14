package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandWithFingers returns a preset HandLandmarks whose joints are placed so
// that the finger-state rules read the given extension vector (thumb, index,
// middle, ring, pinky). An extended thumb has its tip on the outer (smaller x,
// mirrored image) side of the IP joint; an extended finger has its tip above
// (smaller y than) its PIP joint.
func HandWithFingers(thumb, index, middle, ring, pinky bool) HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	// Thumb chain runs sideways from the palm; only the tip x matters.
	hand.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.80, Z: 0.0}
	hand.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.74, Z: 0.0}
	hand.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.68, Z: 0.0}
	if thumb {
		hand.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.64, Z: 0.0}
	} else {
		hand.Points[ThumbTip] = Point3D{X: 0.68, Y: 0.66, Z: 0.0}
	}

	// Remaining fingers share the same vertical joint layout, offset in x.
	fingers := []struct {
		mcp      int
		extended bool
		x        float64
	}{
		{IndexMCP, index, 0.56},
		{MiddleMCP, middle, 0.50},
		{RingMCP, ring, 0.44},
		{PinkyMCP, pinky, 0.38},
	}

	for _, f := range fingers {
		hand.Points[f.mcp] = Point3D{X: f.x, Y: 0.65, Z: 0.0}
		hand.Points[f.mcp+1] = Point3D{X: f.x, Y: 0.55, Z: 0.0} // PIP
		if f.extended {
			hand.Points[f.mcp+2] = Point3D{X: f.x, Y: 0.45, Z: 0.0} // DIP
			hand.Points[f.mcp+3] = Point3D{X: f.x, Y: 0.35, Z: 0.0} // tip
		} else {
			hand.Points[f.mcp+2] = Point3D{X: f.x, Y: 0.60, Z: -0.03} // DIP
			hand.Points[f.mcp+3] = Point3D{X: f.x, Y: 0.68, Z: -0.02} // tip folded past PIP
		}
	}

	return hand
}

// FistLandmarks returns a hand with every finger curled.
func FistLandmarks() HandLandmarks {
	return HandWithFingers(false, false, false, false, false)
}

// OpenPalmLandmarks returns a hand with every finger extended.
func OpenPalmLandmarks() HandLandmarks {
	return HandWithFingers(true, true, true, true, true)
}

// ThumbsUpLandmarks returns a hand with only the thumb extended.
func ThumbsUpLandmarks() HandLandmarks {
	return HandWithFingers(true, false, false, false, false)
}

// PeaceLandmarks returns a hand with index and middle fingers extended.
func PeaceLandmarks() HandLandmarks {
	return HandWithFingers(false, true, true, false, false)
}
