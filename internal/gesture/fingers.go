// Package gesture turns hand landmarks into named gesture identifiers.
package gesture

import "github.com/keerthana/hushtone/internal/detector"

// FingerStates records which fingers are extended, in the order
// thumb, index, middle, ring, pinky.
type FingerStates [5]bool

// Fingers derives the extension state of each finger from hand landmarks.
// The frame is mirrored before detection, so the thumb counts as extended
// when its tip sits on the smaller-x side of the IP joint. The other four
// fingers are extended when the tip is above the PIP joint (smaller y).
func Fingers(hand *detector.HandLandmarks) FingerStates {
	var f FingerStates
	f[0] = hand.Points[detector.ThumbTip].X < hand.Points[detector.ThumbIP].X
	f[1] = hand.Points[detector.IndexTip].Y < hand.Points[detector.IndexPIP].Y
	f[2] = hand.Points[detector.MiddleTip].Y < hand.Points[detector.MiddlePIP].Y
	f[3] = hand.Points[detector.RingTip].Y < hand.Points[detector.RingPIP].Y
	f[4] = hand.Points[detector.PinkyTip].Y < hand.Points[detector.PinkyPIP].Y
	return f
}

// Count returns the number of extended fingers.
func (f FingerStates) Count() int {
	n := 0
	for _, extended := range f {
		if extended {
			n++
		}
	}
	return n
}
