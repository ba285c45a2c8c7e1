// Package controller owns the conversation: transcript, input buffer, mode
// and the send pipeline.
//
// A Controller is not safe for concurrent use. It is meant to be driven from
// a single event loop; the only work done elsewhere is Request.Run, whose
// result comes back through Resolve.
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Arishsingh/intern/internal/chatapi"
	"github.com/Arishsingh/intern/internal/event"
	"github.com/Arishsingh/intern/internal/logger"
	"github.com/Arishsingh/intern/internal/mode"
	"github.com/Arishsingh/intern/internal/transcript"
)

const (
	FallbackText = "❌ Error fetching response."
	FaultText    = "⚠️ Server error."
)

var ErrBusy = errors.New("a reply is still pending")

type State int

const (
	Idle State = iota
	Composing
	Sending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Sending:
		return "sending"
	}
	return "unknown"
}

type Controller struct {
	transcript *transcript.Transcript
	selector   *mode.Selector
	input      string
	pending    *Request
	lg         logger.Logger
}

type Options struct {
	Greeting string
	Mode     mode.Mode
	Logger   logger.Logger
}

func New(opts Options) *Controller {
	lg := opts.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	var seed []transcript.Message
	if opts.Greeting != "" {
		seed = append(seed, transcript.Bot(opts.Greeting))
	}
	return &Controller{
		transcript: transcript.New(seed...),
		selector:   mode.NewSelector(opts.Mode),
		lg:         lg,
	}
}

func (c *Controller) Messages() []transcript.Message {
	return c.transcript.Messages()
}

func (c *Controller) Input() string {
	return c.input
}

func (c *Controller) SetInput(s string) {
	c.input = s
}

func (c *Controller) Selector() *mode.Selector {
	return c.selector
}

func (c *Controller) Mode() mode.Mode {
	return c.selector.Mode()
}

func (c *Controller) State() State {
	if c.pending != nil {
		return Sending
	}
	if c.input != "" {
		return Composing
	}
	return Idle
}

// Editor is a text field that owns a cursor, such as a bubbles textarea.
type Editor interface {
	Value() string
	InsertString(s string)
}

type bufferEditor struct {
	c *Controller
}

func (e bufferEditor) Value() string          { return e.c.input }
func (e bufferEditor) InsertString(s string) { e.c.input += s }

// KeyEnter handles the Enter key against the bare buffer, where the cursor
// is always at the end.
func (c *Controller) KeyEnter(shift bool) (*Request, error) {
	return c.KeyEnterIn(bufferEditor{c}, shift)
}

// KeyEnterIn handles the Enter key typed into ed. With shift a newline is
// inserted at the cursor and nothing is sent; otherwise the buffer is sent.
// Either way the buffer is synced from ed first.
func (c *Controller) KeyEnterIn(ed Editor, shift bool) (*Request, error) {
	if shift {
		ed.InsertString("\n")
		c.input = ed.Value()
		return nil, nil
	}
	c.input = ed.Value()
	return c.Send()
}

// Send moves the buffer into the transcript and returns the request to run.
// A blank buffer yields (nil, nil) with nothing changed. While another reply
// is pending it returns ErrBusy and leaves the buffer as it is.
func (c *Controller) Send() (*Request, error) {
	text := c.input
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if c.pending != nil {
		return nil, ErrBusy
	}

	c.transcript.Append(transcript.User(text))
	c.input = ""
	c.transcript.Append(transcript.Placeholder())

	req := &Request{
		ID:         uuid.NewString()[:8],
		Prompt:     text,
		Generation: c.transcript.Generation(),
		lg:         c.lg,
	}
	c.pending = req
	c.lg.Info("send", "request", req.ID, "generation", req.Generation, "mode", c.Mode(), "chars", len(text))
	return req, nil
}

// Resolve applies the outcome of a request. Outcomes for a request that is
// no longer outstanding, including any issued before NewChat, are dropped.
func (c *Controller) Resolve(ev event.Event) bool {
	p := c.pending
	if p == nil || p.ID != ev.RequestID || ev.Generation != c.transcript.Generation() {
		c.lg.Debug("drop stale reply", "request", ev.RequestID, "generation", ev.Generation, "current", c.transcript.Generation())
		return false
	}
	if !c.transcript.Pending() {
		c.lg.Warn("no placeholder to resolve", "request", ev.RequestID)
		c.pending = nil
		return false
	}

	var text string
	switch data := ev.Data.(type) {
	case event.ReplyData:
		text = data.Text
	case event.FaultData:
		text = data.Text
	default:
		text = FaultText
	}

	if err := c.transcript.ReplaceLast(transcript.Bot(text)); err != nil {
		c.lg.Error("resolve", "request", ev.RequestID, "err", err)
		c.pending = nil
		return false
	}
	c.pending = nil
	return true
}

// NewChat empties the transcript whatever the pipeline is doing. A reply
// still in flight is dropped when it arrives.
func (c *Controller) NewChat() {
	if c.pending != nil {
		c.lg.Info("new chat with reply pending", "request", c.pending.ID)
	}
	c.lg.Debug("new chat", "dropped", c.transcript.Len())
	c.transcript.Clear()
	c.pending = nil
}

// Request is one call to the chat service, tagged with the transcript
// generation it was issued against.
type Request struct {
	ID         string
	Prompt     string
	Generation uint64

	lg logger.Logger
}

// Run performs the call and converts every result, including failures, into
// an event. It never returns an error.
func (r *Request) Run(ctx context.Context, svc chatapi.Service) event.Event {
	ev := event.Event{RequestID: r.ID, Generation: r.Generation}
	lg := r.lg
	if lg == nil {
		lg = logger.Nop()
	}

	reply, err := svc.Chat(ctx, r.Prompt)
	if err != nil {
		lg.Error("chat request failed", "request", r.ID, "err", err)
		ev.Type = event.Failed
		ev.Data = event.FaultData{Text: FaultText}
		return ev
	}

	ev.Type = event.Resolved
	if reply == "" {
		lg.Warn("chat reply without response", "request", r.ID)
		ev.Data = event.ReplyData{Text: FallbackText, Malformed: true}
		return ev
	}
	ev.Data = event.ReplyData{Text: reply}
	return ev
}
