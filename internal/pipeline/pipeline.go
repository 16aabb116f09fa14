// Package pipeline runs the continuous capture-classify-record loop and owns
// the shared state it publishes.
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/capture"
	"github.com/keerthana/hushtone/internal/detector"
	"github.com/keerthana/hushtone/internal/gesture"
	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/store"
)

// DefaultFPS is the capture loop frame rate when none is configured.
const DefaultFPS = 15

// Config holds the collaborators and tuning of the capture pipeline.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Events   *store.EventRepository
	Resolver *meaning.Resolver
	FPS      int
	Cooldown time.Duration
	Logger   *zap.SugaredLogger
}

// Status is a consistent snapshot of the shared pipeline state.
type Status struct {
	Running  bool
	Gesture  string
	ImageRef string
	Subject  auth.Subject
}

// Pipeline owns the capture worker and the state shared with request
// handlers. The worker is the only writer of that state; handlers read it
// through Status and LatestFrameJPEG. Start and Stop serialize lifecycle
// changes against each other.
type Pipeline struct {
	camera   capture.Camera
	detector detector.Detector
	events   *store.EventRepository
	resolver *meaning.Resolver
	fps      int
	cooldown time.Duration
	logger   *zap.SugaredLogger

	// lifecycle, guarded by mu
	mu     sync.Mutex
	stopCh chan struct{}

	// shared state, guarded by stateMu
	stateMu  sync.RWMutex
	running  bool
	subject  auth.Subject
	gestures *gesture.Debouncer
	latest   string
	imageRef string
	frame    gocv.Mat
	hasFrame bool

	// optional qualifying-event hook (tray display)
	notify func(gestureID string)
}

// New creates a Pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Pipeline{
		camera:   cfg.Camera,
		detector: cfg.Detector,
		events:   cfg.Events,
		resolver: cfg.Resolver,
		fps:      fps,
		cooldown: cfg.Cooldown,
		logger:   logger,
		gestures: gesture.NewDebouncer(cfg.Cooldown),
	}
}

// OnGesture registers a hook invoked on every qualifying detection. Must be
// set before Start.
func (p *Pipeline) OnGesture(fn func(gestureID string)) {
	p.notify = fn
}

// Start opens the camera and launches the capture worker with the given
// subject owning the detections. Starting an already-running pipeline is a
// no-op. A failed camera open fails the start; the worker is never launched.
func (p *Pipeline) Start(sub auth.Subject) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh != nil {
		return nil
	}

	if err := p.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	p.stateMu.Lock()
	p.running = true
	p.subject = sub
	p.gestures = gesture.NewDebouncer(p.cooldown)
	// A new session starts blank: the previous session's last gesture
	// must not show up in the first polls of a different subject.
	p.latest = ""
	p.imageRef = ""
	p.stateMu.Unlock()

	p.stopCh = make(chan struct{})
	go p.run(p.stopCh)

	p.logger.Infow("capture pipeline started", "subject_kind", sub.Kind)
	return nil
}

// Stop signals the worker to exit and releases the camera. Stopping an
// already-stopped pipeline is a no-op. The worker observes the signal between
// frames, so one in-flight frame may still be processed.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh == nil {
		return
	}

	close(p.stopCh)
	p.stopCh = nil

	if err := p.camera.Close(); err != nil {
		p.logger.Warnw("error closing camera", "error", err)
	}

	p.stateMu.Lock()
	p.running = false
	p.subject = auth.Subject{}
	p.stateMu.Unlock()

	p.logger.Info("capture pipeline stopped")
}

// Running reports whether the capture worker is active.
func (p *Pipeline) Running() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.running
}

// Status returns a snapshot of the shared pipeline state.
func (p *Pipeline) Status() Status {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return Status{
		Running:  p.running,
		Gesture:  p.latest,
		ImageRef: p.imageRef,
		Subject:  p.subject,
	}
}

// LatestFrameJPEG encodes the most recent annotated frame as JPEG. The second
// result is false when no frame has been captured yet.
func (p *Pipeline) LatestFrameJPEG() ([]byte, bool) {
	p.stateMu.RLock()
	if !p.hasFrame {
		p.stateMu.RUnlock()
		return nil, false
	}
	clone := p.frame.Clone()
	p.stateMu.RUnlock()
	defer clone.Close()

	buf, err := gocv.IMEncode(".jpg", clone)
	if err != nil {
		return nil, false
	}
	defer buf.Close()

	// IMEncode's buffer is pooled; copy before returning.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, true
}

// run is the capture worker. Each iteration reads one frame, mirrors it,
// detects hands and feeds them through classification; the annotated frame is
// always published for the streaming consumer, whether or not an event
// qualified. Read failures skip the frame and retry on the next tick.
func (p *Pipeline) run(stopCh chan struct{}) {
	interval := time.Second / time.Duration(p.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := p.camera.ReadFrame()
			if err != nil {
				continue
			}

			// Mirror horizontally; both classification and display
			// assume the flipped orientation.
			mirrored := gocv.NewMat()
			gocv.Flip(*frame, &mirrored, 1)
			frame.Close()

			hands, err := p.detector.Detect(&mirrored)
			if err != nil {
				p.logger.Debugw("hand detection failed", "error", err)
				hands = nil
			}

			if len(hands) > 0 {
				drawHands(&mirrored, hands)
				p.processHands(hands, time.Now())
			}

			p.publishFrame(mirrored)
		}
	}
}

// processHands classifies each detected hand and records qualifying events.
// The action text is resolved against the active subject at detection time,
// so approved custom meanings land in the history as the user sees them.
func (p *Pipeline) processHands(hands []detector.HandLandmarks, now time.Time) {
	for i := range hands {
		fingers := gesture.Fingers(&hands[i])
		id := gesture.Classify(fingers)
		if id == "" {
			continue
		}

		p.stateMu.Lock()
		qualified := p.gestures.Observe(id, now)
		sub := p.subject
		if qualified {
			p.latest = id
			p.imageRef = gesture.ImageRef(id)
		}
		p.stateMu.Unlock()

		if !qualified {
			continue
		}

		text := ""
		if p.resolver != nil {
			text = p.resolver.Resolve(id, sub, "")
		}

		if p.events != nil && !sub.IsZero() {
			if err := p.events.Record(sub, id, text); err != nil {
				// The detection is dropped from history but the shared
				// state above already advanced, so the live view stays
				// current.
				p.logger.Warnw("failed to record gesture event", "gesture", id, "error", err)
			}
		}

		if p.notify != nil {
			p.notify(id)
		}
	}
}

// publishFrame stores the annotated frame, taking ownership of the Mat.
func (p *Pipeline) publishFrame(frame gocv.Mat) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if p.hasFrame {
		p.frame.Close()
	}
	p.frame = frame
	p.hasFrame = true
}

// drawHands overlays landmark markers on the frame.
func drawHands(frame *gocv.Mat, hands []detector.HandLandmarks) {
	cols := frame.Cols()
	rows := frame.Rows()
	green := color.RGBA{G: 255}

	for i := range hands {
		for _, pt := range hands[i].Points {
			center := image.Pt(int(pt.X*float64(cols)), int(pt.Y*float64(rows)))
			gocv.Circle(frame, center, 3, green, -1)
		}
	}
}
