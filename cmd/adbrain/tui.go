package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/minhyannv/adbrain-go/pkg/session"
	"github.com/minhyannv/adbrain-go/pkg/transcript"
)

const (
	headerHeight = 3
	footerHeight = 1
	inputHeight  = 3
)

type tuiStyles struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	activeMode lipgloss.Style
	mode       lipgloss.Style
	user       lipgloss.Style
	assistant  lipgloss.Style
	failure    lipgloss.Style
	muted      lipgloss.Style
}

func defaultTUIStyles() tuiStyles {
	return tuiStyles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		activeMode: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Padding(0, 1),
		mode:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1),
		user:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		assistant:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		failure:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// replyMsg reports that a submission finished; the transcript holds the result.
type replyMsg struct {
	err error
}

// chatModel is the bubbletea model for the chat UI.
type chatModel struct {
	ctrl *session.Controller
	ctx  context.Context

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	styles   tuiStyles
	markdown markdownFunc
	plain    bool

	// pendingAt is the transcript length when pending was submitted.
	pendingAt int
	pending   string
	awaiting  bool
	status    string
	width     int
	height    int
}

func newChatModel(ctx context.Context, ctrl *session.Controller, plain bool) chatModel {
	if ctx == nil {
		ctx = context.Background()
	}
	styles := defaultTUIStyles()

	ta := textarea.New()
	ta.Placeholder = "Ask AdBrain about your advertising…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(inputHeight)
	ta.SetWidth(80)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.assistant

	m := chatModel{
		ctrl:     ctrl,
		ctx:      ctx,
		viewport: viewport.New(80, 20),
		input:    ta,
		spinner:  sp,
		styles:   styles,
		plain:    plain,
		markdown: plainMarkdown,
		width:    80,
		height:   headerHeight + footerHeight + inputHeight + 20,
	}
	if !plain {
		m.markdown = newMarkdownRenderer(76)
	}
	m.refresh()
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight-inputHeight, 3)
		m.input.SetWidth(msg.Width)
		if !m.plain {
			m.markdown = newMarkdownRenderer(max(msg.Width-4, 20))
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.awaiting {
			// Input stays disabled until the pending reply lands.
			return m, nil
		}
		switch msg.String() {
		case "tab":
			return m.switchMode(1), nil
		case "shift+tab":
			return m.switchMode(-1), nil
		case "ctrl+l":
			if err := m.ctrl.Reset(); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Conversation cleared."
			}
			m.refresh()
			return m, nil
		case "enter":
			return m.submit()
		}

	case replyMsg:
		m.awaiting = false
		m.pending = ""
		m.status = ""
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.input.Focus()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.awaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var taCmd, vpCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m chatModel) switchMode(step int) chatModel {
	modes := m.ctrl.Modes()
	idx := 0
	for i, mode := range modes {
		if mode == m.ctrl.Mode() {
			idx = i
			break
		}
	}
	next := modes[(idx+step+len(modes))%len(modes)]
	if err := m.ctrl.SetMode(next); err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("Switched to %s. Conversation restarted.", next)
	}
	m.refresh()
	return m
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.input.Blur()
	m.awaiting = true
	m.pending = text
	m.pendingAt = len(m.ctrl.Transcript())
	m.status = ""
	m.refresh()

	ctrl, ctx := m.ctrl, m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return replyMsg{err: ctrl.Submit(ctx, text)}
	})
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m chatModel) renderHistory() string {
	var sb strings.Builder
	shown := 0
	messages := m.ctrl.Transcript()
	for _, msg := range messages {
		switch msg.Role {
		case transcript.RoleSystem:
			continue
		case transcript.RoleUser:
			sb.WriteString(m.styles.user.Render("You") + "\n" + msg.Content + "\n\n")
		case transcript.RoleAssistant:
			if msg.IsSurrogate() {
				sb.WriteString(m.styles.failure.Render(msg.Content) + "\n\n")
				break
			}
			sb.WriteString(m.styles.assistant.Render("AdBrain") + "\n" + m.markdown(msg.Content) + "\n\n")
		}
		shown++
	}
	// Submit appends the user message itself; until then it is shown from pending.
	if m.pending != "" && len(messages) <= m.pendingAt {
		sb.WriteString(m.styles.user.Render("You") + "\n" + m.pending + "\n\n")
		shown++
	}
	if shown == 0 {
		sb.WriteString(m.styles.muted.Render("Describe your business, offer, audience, and goal.\nAdBrain will ask clarifying questions and then recommend angles, copy, and strategy."))
	}
	return sb.String()
}

func (m chatModel) renderModes() string {
	current := m.ctrl.Mode()
	tabs := make([]string, 0, len(m.ctrl.Modes()))
	for _, mode := range m.ctrl.Modes() {
		if mode == current {
			tabs = append(tabs, m.styles.activeMode.Render(mode.String()))
		} else {
			tabs = append(tabs, m.styles.mode.Render(mode.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m chatModel) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("🧠 AdBrain – Advertising Strategist"),
		m.styles.subtitle.Render("Talk to a senior performance marketer about your campaigns, offers, and ideas."),
		m.renderModes(),
	)

	footer := m.styles.muted.Render("enter send • tab/shift+tab mode • ctrl+l clear • esc quit")
	if m.awaiting {
		footer = m.spinner.View() + " AdBrain is thinking…"
	} else if m.status != "" {
		footer = m.styles.muted.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer, m.input.View())
}

// runTUI runs the chat UI until the user quits.
func runTUI(ctx context.Context, ctrl *session.Controller, plain bool) error {
	p := tea.NewProgram(newChatModel(ctx, ctrl, plain), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
