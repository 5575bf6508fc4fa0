package gradgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned by Apply for unrecognized operations.
var ErrUnknownCommand = errors.New("unknown command")

// Hooks are the host callbacks the Editor drives. Nil hooks are skipped.
type Hooks struct {
	// Render receives the CSS after every change.
	Render func(Rendered)
	// Notify receives transient user messages.
	Notify func(Notice)
	// StopsChanged receives the stop list whenever stops are added,
	// removed or replaced, so hosts can rebuild their controls.
	StopsChanged func([]ColorStop)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function such as clipboard.WriteAll.
type ClipboardFunc func(text string) error

// WriteAll calls f.
func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// Editor applies user commands to a single State and reports the results
// through Hooks. It is not safe for concurrent use; hosts run it from one
// event loop.
type Editor struct {
	state *State
	hooks Hooks
}

// NewEditor wraps state. A nil state starts from the default gradient.
func NewEditor(state *State, hooks Hooks) *Editor {
	if state == nil {
		state = NewState()
	}
	return &Editor{state: state, hooks: hooks}
}

// State returns the live state. Callers must not keep it across commands
// that replace it (Start).
func (e *Editor) State() *State { return e.state }

// Rendered returns the CSS for the current state.
func (e *Editor) Rendered() Rendered { return Render(e.state) }

// Start initializes the editor from an incoming share token. An empty
// token keeps the default gradient. On a decode failure the default is
// restored, NoticeInvalidURL is sent, and clearToken reports whether the
// host must remove the token from its visible URL.
func (e *Editor) Start(token string, opts ...Option) (loaded, clearToken bool) {
	defer e.refresh(true)

	if token == "" {
		return false, false
	}
	opts = append([]Option{WithRand(e.state.rng)}, opts...)
	s, err := Decode(token, opts...)
	if err != nil {
		e.state = NewState(opts...)
		e.notify(NoticeInvalidURL)
		return false, ShouldClearToken(err)
	}
	e.state = s
	e.notify(NoticeLoadedFromURL)
	return true, false
}

// AddStop appends a random stop.
func (e *Editor) AddStop() ColorStop {
	stop := e.state.AddStop()
	e.refresh(true)
	e.notify(NoticeStopAdded)
	return stop
}

// RemoveStop removes a stop unless only two remain, in which case the
// minimum-stops notice is sent and ErrMinimumStops returned.
func (e *Editor) RemoveStop(id int) error {
	if err := e.state.RemoveStop(id); err != nil {
		e.notify(NoticeMinimumStops)
		return err
	}
	e.refresh(true)
	e.notify(NoticeStopRemoved)
	return nil
}

// SetStopColor changes one stop's color.
func (e *Editor) SetStopColor(id int, color string) error {
	if err := e.state.UpdateStopColor(id, color); err != nil {
		e.notify(NoticeInvalidColor)
		return err
	}
	e.refresh(false)
	return nil
}

// SetStopPosition moves one stop.
func (e *Editor) SetStopPosition(id, position int) {
	e.state.UpdateStopPosition(id, position)
	e.refresh(false)
}

// SetKind changes the gradient kind.
func (e *Editor) SetKind(kind Kind) {
	e.state.SetKind(kind)
	e.refresh(false)
}

// SetAngle changes the angle.
func (e *Editor) SetAngle(angle int) {
	e.state.SetAngle(angle)
	e.refresh(false)
}

// SetOpacity changes the opacity.
func (e *Editor) SetOpacity(opacity int) {
	e.state.SetOpacity(opacity)
	e.refresh(false)
}

// Randomize replaces the gradient with a random one.
func (e *Editor) Randomize() {
	e.state.Randomize()
	e.refresh(true)
	e.notify(NoticeRandomized)
}

// ShareLink returns the share URL for the current state on base.
func (e *Editor) ShareLink(base string) (string, error) {
	return ShareURL(base, e.state)
}

// CopyCSS writes the CSS declaration to clip. Failures are reported to
// the user and returned.
func (e *Editor) CopyCSS(clip Clipboard) error {
	if err := clip.WriteAll(e.Rendered().Declaration); err != nil {
		e.notify(NoticeCSSCopyError)
		return fmt.Errorf("copy css: %w", err)
	}
	e.notify(NoticeCSSCopied)
	return nil
}

// CopyShareLink writes the share URL to clip. Failures are reported to the
// user and returned.
func (e *Editor) CopyShareLink(base string, clip Clipboard) (string, error) {
	link, err := e.ShareLink(base)
	if err == nil {
		err = clip.WriteAll(link)
	}
	if err != nil {
		e.notify(NoticeShareCopyError)
		return "", fmt.Errorf("copy share link: %w", err)
	}
	e.notify(NoticeShareCopied)
	return link, nil
}

// Operations accepted by Apply.
const (
	OpAddStop    = "add"
	OpRemoveStop = "remove"
	OpColor      = "color"
	OpPosition   = "position"
	OpKind       = "kind"
	OpAngle      = "angle"
	OpOpacity    = "opacity"
	OpRandomize  = "randomize"
)

// Command is a string-encoded editor action, as received from a form or
// query string.
type Command struct {
	Op    string
	ID    int
	Value string
}

// Apply dispatches a Command to the matching typed method.
func (e *Editor) Apply(cmd Command) error {
	switch cmd.Op {
	case OpAddStop:
		e.AddStop()
		return nil
	case OpRemoveStop:
		return e.RemoveStop(cmd.ID)
	case OpColor:
		return e.SetStopColor(cmd.ID, cmd.Value)
	case OpRandomize:
		e.Randomize()
		return nil
	case OpKind:
		kind, ok := ParseKind(cmd.Value)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, cmd.Value)
		}
		e.SetKind(kind)
		return nil
	case OpPosition, OpAngle, OpOpacity:
		n, err := strconv.Atoi(strings.TrimSpace(cmd.Value))
		if err != nil {
			return fmt.Errorf("%s: value %q is not an integer", cmd.Op, cmd.Value)
		}
		switch cmd.Op {
		case OpPosition:
			e.SetStopPosition(cmd.ID, n)
		case OpAngle:
			e.SetAngle(n)
		default:
			e.SetOpacity(n)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
}

func (e *Editor) refresh(stopsChanged bool) {
	if stopsChanged && e.hooks.StopsChanged != nil {
		e.hooks.StopsChanged(e.state.Stops())
	}
	if e.hooks.Render != nil {
		e.hooks.Render(Render(e.state))
	}
}

func (e *Editor) notify(n Notice) {
	if e.hooks.Notify != nil {
		e.hooks.Notify(n)
	}
}
