package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Arishsingh/intern/internal/chatapi"
	"github.com/Arishsingh/intern/internal/controller"
	"github.com/Arishsingh/intern/internal/event"
	"github.com/Arishsingh/intern/internal/logger"
	"github.com/Arishsingh/intern/internal/mode"
	"github.com/Arishsingh/intern/internal/transcript"
)

const (
	title        = "Axamine-Ai"
	sidebarWidth = 28
	maxInputRows = 5

	botAvatar  = "🧑🏻‍💼"
	userAvatar = "👨‍⚕️"
)

type Options struct {
	Markdown bool
}

type Model struct {
	ctrl     *controller.Controller
	svc      chatapi.Service
	keys     keyMap
	help     help.Model
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	markdown   bool
	mdRenderer *glamour.TermRenderer
	notice     string

	width  int
	height int
	ready  bool
}

func New(ctrl *controller.Controller, svc chatapi.Service, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Blur()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(fgMuted)

	ta.SetValue(ctrl.Input())

	return Model{
		ctrl:     ctrl,
		svc:      svc,
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ta,
		spinner:  sp,
		markdown: opts.Markdown,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

type replyMsg event.Event

func (m Model) request(req *controller.Request) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return replyMsg(req.Run(context.Background(), svc))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Send):
			return m.send()

		case key.Matches(msg, m.keys.Newline):
			m.ctrl.KeyEnterIn(&m.input, true)
			m.layout()
			return m, nil

		case key.Matches(msg, m.keys.NewChat):
			m.ctrl.NewChat()
			m.notice = ""
			m.updateViewport()
			return m, nil

		case key.Matches(msg, m.keys.Position):
			mode.Sidebar.Cycle(m.ctrl.Selector())
			logger.Debug("mode changed", "view", mode.Sidebar.Name, "mode", m.ctrl.Mode())
			return m, nil

		case key.Matches(msg, m.keys.Tool):
			mode.Composer.Cycle(m.ctrl.Selector())
			logger.Debug("mode changed", "view", mode.Composer.Name, "mode", m.ctrl.Mode())
			return m, nil

		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.mainWidth(), 1)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
			cmds = append(cmds, m.input.Focus())
		}
		m.layout()
		m.initMarkdownRenderer()
		m.updateViewport()

	case spinner.TickMsg:
		if m.ctrl.State() == controller.Sending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case replyMsg:
		m.ctrl.Resolve(event.Event(msg))
		m.notice = ""
		m.updateViewport()
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		before := m.input.LineCount()
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetInput(m.input.Value())
		if m.input.LineCount() != before {
			m.layout()
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// send hands the buffer to the controller. Typing stays enabled while a
// reply is pending; only a second send is refused.
func (m Model) send() (tea.Model, tea.Cmd) {
	req, err := m.ctrl.KeyEnterIn(&m.input, false)
	if errors.Is(err, controller.ErrBusy) {
		m.notice = "Still waiting for the previous reply"
		return m, nil
	}
	if req == nil {
		return m, nil
	}

	m.input.Reset()
	m.notice = ""
	m.layout()
	m.updateViewport()
	return m, tea.Batch(m.spinner.Tick, m.request(req))
}

func (m *Model) mainWidth() int {
	if m.showSidebar() {
		return m.width - sidebarWidth
	}
	return m.width
}

func (m *Model) showSidebar() bool {
	return m.width >= 80
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	w := m.mainWidth()

	headerHeight := 1
	statusHeight := 1
	footerHeight := 1
	inputLines := min(max(m.input.LineCount(), 1), maxInputRows)
	inputHeight := inputLines + 2

	m.viewport.Width = w
	m.viewport.Height = max(m.height-headerHeight-statusHeight-inputHeight-footerHeight, 1)

	selectorWidth := lipgloss.Width(m.composerSelector())
	m.input.SetWidth(max(w-selectorWidth-5, 10))
	m.input.SetHeight(inputLines)
	m.help.Width = w
}

func (m *Model) initMarkdownRenderer() {
	if !m.markdown {
		return
	}
	w := max(m.mainWidth()-8, 40)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(w),
	)
	if err == nil {
		m.mdRenderer = r
	}
}

func (m *Model) renderMarkdown(content string) string {
	if m.mdRenderer == nil {
		return content
	}
	out, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}

// updateViewport rebuilds the transcript and then scrolls to the newest
// message. Called after every transcript mutation.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	msgs := m.ctrl.Messages()
	for i, msg := range msgs {
		m.renderMsg(&sb, msg)
		if i < len(msgs)-1 {
			sb.WriteString("\n")
		}
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

var (
	primary   = lipgloss.Color("#729FCF")
	secondary = lipgloss.Color("#FCAF3E")
	danger    = lipgloss.Color("#EF2929")
	fgBase    = lipgloss.Color("#D3D7CF")
	fgMuted   = lipgloss.Color("#BABDB6")
	fgSubtle  = lipgloss.Color("#555753")
	bgSubtle  = lipgloss.Color("#2E2E2E")
)

func avatar(r transcript.Role) string {
	if r == transcript.RoleBot {
		return botAvatar
	}
	return userAvatar
}

func (m *Model) renderMsg(sb *strings.Builder, msg transcript.Message) {
	bubbleWidth := max(m.mainWidth()-6, 10)
	head := avatar(msg.Role) + " "

	switch {
	case msg.Pending:
		sb.WriteString(head)
		sb.WriteString(lipgloss.NewStyle().Foreground(fgSubtle).Italic(true).Render(msg.Text))
	case msg.Role == transcript.RoleUser:
		sb.WriteString(head)
		sb.WriteString(lipgloss.NewStyle().Foreground(fgMuted).Render("You"))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(fgBase).
			Width(bubbleWidth).
			BorderLeft(true).
			BorderForeground(primary).
			BorderStyle(lipgloss.Border{Left: "▌"}).
			PaddingLeft(1).
			Render(msg.Text))
	case msg.Text == controller.FallbackText || msg.Text == controller.FaultText:
		sb.WriteString(head)
		sb.WriteString(lipgloss.NewStyle().Foreground(danger).Render(msg.Text))
	default:
		sb.WriteString(head)
		sb.WriteString(lipgloss.NewStyle().Foreground(fgMuted).Render(title))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().
			Width(bubbleWidth).
			BorderLeft(true).
			BorderForeground(secondary).
			BorderStyle(lipgloss.Border{Left: "▌"}).
			PaddingLeft(1).
			Render(m.renderMarkdown(msg.Text)))
	}
	sb.WriteString("\n")
}

func (m Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(primary).Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(fgBase).Render("+ New Chat"))
	sb.WriteString(lipgloss.NewStyle().Foreground(fgSubtle).Render("  ctrl+n"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(fgSubtle).Render("Position  ctrl+p"))
	sb.WriteString("\n")

	selected := mode.Sidebar.Index(m.ctrl.Mode())
	for i, o := range mode.Sidebar.Options {
		if i == selected {
			sb.WriteString(lipgloss.NewStyle().Foreground(secondary).Render("› " + o.Label))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(fgMuted).Render("  " + o.Label))
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(max(m.height-2, 1)).
		Padding(1, 1, 0, 1).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(fgSubtle).
		Render(sb.String())
}

func (m Model) composerSelector() string {
	return lipgloss.NewStyle().Foreground(secondary).Render("[" + mode.Composer.Label(m.ctrl.Mode()) + " ▾]")
}

func (m Model) View() string {
	if !m.ready {
		return lipgloss.NewStyle().Foreground(fgMuted).Render("Loading...")
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(primary).Render("WELCOME")
	if !m.showSidebar() {
		header += lipgloss.NewStyle().Foreground(fgSubtle).Render("  " + title + " · " + mode.Sidebar.Label(m.ctrl.Mode()))
	}

	var status string
	switch {
	case m.notice != "":
		status = lipgloss.NewStyle().Foreground(secondary).Render(m.notice)
	case m.ctrl.State() == controller.Sending:
		status = m.spinner.View() + " " + lipgloss.NewStyle().Foreground(fgMuted).Render("Waiting for reply...")
	}
	if !m.viewport.AtBottom() {
		hint := lipgloss.NewStyle().Foreground(fgMuted).Italic(true).Render("↓ more")
		if status != "" {
			status += "  " + hint
		} else {
			status = hint
		}
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fgSubtle).
		Background(bgSubtle).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, m.composerSelector(), " ", m.input.View()))

	main := strings.Join([]string{
		header,
		m.viewport.View(),
		status,
		inputBox,
		m.help.View(m.keys),
	}, "\n")

	if !m.showSidebar() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}
