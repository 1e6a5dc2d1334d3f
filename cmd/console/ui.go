package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/jwebster45206/wayfarer/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const (
	Title           = "WAYFARER"
	PlaceHolderText = "move north, interact <name>, look, help..."
	TalkingText     = "Say something, or 'back' to walk away..."
)

type entryKind int

const (
	entryGame entryKind = iota
	entryPlayer
	entryCharacter
)

// entry is one block in the chat log.
type entry struct {
	kind    entryKind
	speaker string
	text    string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctrl         *state.Controller
	log          []entry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	showQuitModal bool
	// quitPending defers a confirmed quit until the running command returns.
	quitPending bool

	progressTick int
}

type commandResultMsg struct {
	result state.CommandResult
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().Padding(2, 0, 1, 3)
	metaPanelStyle = lipgloss.NewStyle().Padding(2, 2, 0, 0)

	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("173")).Bold(true) // rust
	speakerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Bold(true) // sand
	narrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))            // sea grey
	playerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("74"))             // harbour blue
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ruleStyle      = hintStyle

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("66")).
			Padding(1, 2).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	modalTitleStyle = titleStyle.Align(lipgloss.Center)
)

// NewConsoleUI opens on the narrator's world description followed by the
// player's surroundings.
func NewConsoleUI(ctrl *state.Controller, intro string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = hintStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctrl:         ctrl,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		log: []entry{
			{kind: entryGame, text: intro},
			{kind: entryGame, text: ctrl.Game().Look()},
		},
	}
}

func (m ConsoleUI) writeMetadata() string {
	game := m.ctrl.Game()
	player := game.Player()

	var content strings.Builder
	content.WriteString(titleStyle.Render("TRAVELLER") + "\n\n")
	content.WriteString("Playing as:\n" + player.Name + "\n\n")
	content.WriteString("Location:\n" + player.Location + "\n\n")

	if partner := m.ctrl.Partner(); partner != "" {
		content.WriteString("Talking with:\n" + partner + "\n\n")
	}

	content.WriteString("Nearby:\n")
	nearby := 0
	for _, c := range game.CharactersAt(player.Location) {
		if c == player {
			continue
		}
		content.WriteString("• " + c.Name + "\n")
		nearby++
	}
	if nearby == 0 {
		content.WriteString("No one\n")
	}

	content.WriteString("\nGame ID:\n")
	content.WriteString(game.ID.String()[:8] + "...\n\n")

	content.WriteString("Keys:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Esc: Quit\n")
	content.WriteString("• help: Commands\n")

	return content.String()
}

// writeChatContent renders the whole log for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // left(3) + right(3) padding
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(Title) + "\n\n")
	content.WriteString(ruleStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, e := range m.log {
		content.WriteString(formatEntry(e, chatWidth) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatEntry(e entry, width int) string {
	switch e.kind {
	case entryPlayer:
		return playerStyle.Render("You: ") + wordwrap.String(e.text, width-5)
	case entryCharacter:
		line := wordwrap.String(chat.FormatWithSpeaker(e.text, e.speaker), width)
		if name, rest, ok := strings.Cut(line, ":"); ok {
			return speakerStyle.Render(name+":") + rest
		}
		return line
	default:
		return narrationStyle.Render(wordwrap.String(e.text, width))
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		if !m.loading {
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			// one command at a time
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			m.log = append(m.log, entry{kind: entryPlayer, text: input})
			m.writeChatContent()

			return m, tea.Batch(m.runCommand(input), progressTick())
		}

	case commandResultMsg:
		m.loading = false
		res := msg.result
		if res.Message != "" {
			kind := entryGame
			if res.Speaker != "" {
				kind = entryCharacter
			}
			m.log = append(m.log, entry{kind: kind, speaker: res.Speaker, text: res.Message})
		}
		if m.ctrl.Partner() != "" {
			m.textarea.Placeholder = TalkingText
		} else {
			m.textarea.Placeholder = PlaceHolderText
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		if res.Quit {
			return m, tea.Quit
		}
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// runCommand hands input to the controller off the UI goroutine. Enter is
// ignored until the result arrives.
func (m ConsoleUI) runCommand(input string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return commandResultMsg{result: ctrl.Handle(context.Background(), input)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case commandResultMsg:
		// a command finished while the modal was up
		m.showQuitModal = false
		model, cmd := m.Update(msg)
		ui, ok := model.(ConsoleUI)
		if !ok {
			return model, cmd
		}
		if ui.quitPending {
			return ui, tea.Quit
		}
		ui.showQuitModal = true
		return ui, cmd

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			return m, progressTick()
		}

	case tea.KeyMsg:
		if m.quitPending {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m.confirmQuit()
		case tea.KeyEsc:
			m.showQuitModal = false
			m.textarea.Focus()
			return m, textarea.Blink
		default:
			switch msg.String() {
			case "y", "Y":
				return m.confirmQuit()
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

// confirmQuit exits now, or after the running command returns.
func (m ConsoleUI) confirmQuit() (tea.Model, tea.Cmd) {
	if m.loading {
		m.quitPending = true
		return m, nil
	}
	return m, tea.Quit
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the road?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress is lost. Anyone you are talking to will still remember the conversation.")
	content.WriteString("\n\n")
	if m.quitPending {
		content.WriteString(hintStyle.Render("Finishing the current turn..."))
	} else {
		content.WriteString(hintStyle.Render("Press Y to quit, N to keep playing"))
	}

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			ruleStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar draws the waiting animation shown while a command runs.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return ruleStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

// String renders the log as plain text.
func (m ConsoleUI) String() string {
	lines := make([]string, 0, len(m.log))
	for _, e := range m.log {
		switch e.kind {
		case entryPlayer:
			lines = append(lines, "You: "+e.text)
		case entryCharacter:
			lines = append(lines, chat.FormatWithSpeaker(e.text, e.speaker))
		default:
			lines = append(lines, e.text)
		}
	}
	return strings.Join(lines, "\n")
}
