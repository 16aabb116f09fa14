// Package tray provides a system tray interface for the Hushtone gesture-to-text service.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray controller. Recognition starts stopped; the
// toggle reflects whether the capture pipeline is running.
type Tray struct {
	onToggle    func(running bool)
	onDashboard func()
	onQuit      func()
	running     bool
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuToggle   *systray.MenuItem
	menuLastSign *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback invoked when recognition is toggled.
func (t *Tray) OnToggle(fn func(running bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnDashboard sets the callback invoked when the dashboard item is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback invoked when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("Hushtone")
	systray.SetTooltip("Hushtone Gesture to Text")

	t.menuToggle = systray.AddMenuItem("○ Recognition stopped", "Start or stop recognition")
	systray.AddSeparator()

	t.menuLastSign = systray.AddMenuItem("Last: none", "Last recognized sign")
	t.menuLastSign.Disable()
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Hushtone")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.running = !t.running
	running := t.running

	if running {
		t.menuToggle.SetTitle("● Recognition running")
	} else {
		t.menuToggle.SetTitle("○ Recognition stopped")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(running)
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetRunning updates the toggle to match pipeline state changed elsewhere,
// for example through the HTTP API.
func (t *Tray) SetRunning(running bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = running
	if t.menuToggle == nil {
		return
	}
	if running {
		t.menuToggle.SetTitle("● Recognition running")
	} else {
		t.menuToggle.SetTitle("○ Recognition stopped")
	}
}

// SetLastSign updates the last recognized sign shown in the menu.
func (t *Tray) SetLastSign(label string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastSign != nil {
		if label == "" {
			t.menuLastSign.SetTitle("Last: none")
		} else {
			t.menuLastSign.SetTitle("Last: " + label)
		}
	}
}

// IsRunning returns the tray's view of the recognition state.
func (t *Tray) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}
