package mode

import "fmt"

// Mode is the assistant persona picked in the UI. It is display state only;
// the chat request does not carry it.
type Mode string

const (
	Chatbot      Mode = "chatbot"
	Cardiologist Mode = "cardiologist"
	Physiologist Mode = "physiologist"
	Neurologist  Mode = "neurologist"
	Report       Mode = "report"
	Image        Mode = "image"
)

func All() []Mode {
	return []Mode{Chatbot, Cardiologist, Physiologist, Neurologist, Report, Image}
}

func (m Mode) Valid() bool {
	for _, v := range All() {
		if v == m {
			return true
		}
	}
	return false
}

func Parse(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q", s)
	}
	return m, nil
}

// Selector owns the single mode value every view reads and writes.
type Selector struct {
	mode Mode
}

func NewSelector(m Mode) *Selector {
	if !m.Valid() {
		m = Chatbot
	}
	return &Selector{mode: m}
}

func (s *Selector) Mode() Mode {
	return s.mode
}

func (s *Selector) Set(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q", m)
	}
	s.mode = m
	return nil
}

type Option struct {
	Mode  Mode
	Label string
}

// View is one selector control. Several views may list different options
// but all of them are bound to the same Selector.
type View struct {
	Name    string
	Options []Option
}

var (
	Sidebar = View{
		Name: "position",
		Options: []Option{
			{Chatbot, "Select your position"},
			{Cardiologist, "Cardiologist"},
			{Physiologist, "Physiologist"},
			{Neurologist, "Neurologist"},
		},
	}
	Composer = View{
		Name: "tool",
		Options: []Option{
			{Chatbot, "Chat Bot"},
			{Report, "Report Generator"},
			{Image, "Image Analysis"},
		},
	}
)

// Index returns the option showing m, or -1 when this view has none.
func (v View) Index(m Mode) int {
	for i, o := range v.Options {
		if o.Mode == m {
			return i
		}
	}
	return -1
}

func (v View) Label(m Mode) string {
	if i := v.Index(m); i >= 0 {
		return v.Options[i].Label
	}
	return "—"
}

// Cycle moves s to the option after its current one in this view.
func (v View) Cycle(s *Selector) Mode {
	if len(v.Options) == 0 {
		return s.Mode()
	}
	next := v.Options[(v.Index(s.Mode())+1)%len(v.Options)].Mode
	s.mode = next
	return next
}
