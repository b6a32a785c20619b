package presentation

import (
	"fmt"

	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/sirupsen/logrus"
)

// Player moves a display from frame to frame.
// Transitions are immediate.
type Player struct {
	display *svgdisplay.Display
	pres    *Presentation
	frames  []svgdisplay.Frame

	current int // -1 before Start
	log     logrus.FieldLogger
}

// NewPlayer resolves the frames of `p` against `finder`.
// `display` must be set up with the layers of `p`.
// If `log` is nil, the logrus standard logger is used.
func NewPlayer(display *svgdisplay.Display, p *Presentation, finder ElementFinder, log logrus.FieldLogger) (*Player, error) {
	frames, err := p.Resolve(finder)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Player{display: display, pres: p, frames: frames, current: -1, log: log}, nil
}

// Len returns the number of frames.
func (pl *Player) Len() int { return len(pl.frames) }

// Current returns the index of the frame shown, or -1.
func (pl *Player) Current() int { return pl.current }

// CurrentFrame returns the frame shown, or false before Start.
func (pl *Player) CurrentFrame() (Frame, bool) {
	if pl.current < 0 {
		return Frame{}, false
	}
	return pl.pres.Frames[pl.current], true
}

// Start shows the first frame. It is a no-op for empty presentations.
func (pl *Player) Start() {
	if len(pl.frames) == 0 {
		return
	}
	pl.show(0)
}

// Next shows the following frame and returns true,
// or returns false on the last frame.
func (pl *Player) Next() bool {
	if pl.current+1 >= len(pl.frames) {
		return false
	}
	pl.show(pl.current + 1)
	return true
}

// Previous shows the preceding frame and returns true,
// or returns false on the first frame.
func (pl *Player) Previous() bool {
	if pl.current <= 0 {
		return false
	}
	pl.show(pl.current - 1)
	return true
}

// First shows the first frame.
func (pl *Player) First() { pl.Start() }

// Last shows the last frame.
func (pl *Player) Last() {
	if len(pl.frames) == 0 {
		return
	}
	pl.show(len(pl.frames) - 1)
}

// JumpTo shows the frame at `index` (starting at 0).
func (pl *Player) JumpTo(index int) error {
	if index < 0 || index >= len(pl.frames) {
		return fmt.Errorf("frame index %d out of range [0, %d)", index, len(pl.frames))
	}
	pl.show(index)
	return nil
}

// JumpToID shows the frame with the given id.
func (pl *Player) JumpToID(id string) error {
	index := pl.pres.IndexOf(id)
	if index == -1 {
		return fmt.Errorf("unknown frame %q", id)
	}
	pl.show(index)
	return nil
}

func (pl *Player) show(index int) {
	pl.current = index
	pl.log.WithFields(logrus.Fields{
		"frame": index,
		"id":    pl.pres.Frames[index].ID,
	}).Debug("showing frame")
	pl.display.ShowFrame(pl.frames[index])
}
