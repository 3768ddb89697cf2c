// Package pomodoro runs a focus timer in the terminal. Work blocks are
// tracked as real time entries through the tracker service, so a finished
// session shows up in reports like any other logged time.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/service"
	"github.com/okuren/tt/internal/timeparse"
)

// BlockKind distinguishes work blocks from breaks.
type BlockKind int

const (
	Work BlockKind = iota
	ShortBreak
	LongBreak
)

func (k BlockKind) String() string {
	switch k {
	case Work:
		return "work"
	case ShortBreak:
		return "short break"
	default:
		return "long break"
	}
}

// Block is one phase of a session.
type Block struct {
	Kind     BlockKind
	Duration time.Duration
}

// Settings is the parsed form of the [pomodoro] config section.
type Settings struct {
	Length     time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Cycles     int
	LongEvery  int
}

// ParseConfig resolves the duration strings of the config section. The
// strings use the same grammar as the CLI (1h30m, :5, bare minutes).
func ParseConfig(cfg config.PomodoroConfig) (Settings, error) {
	length, err := timeparse.Minutes(cfg.Length)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid pomodoro length %q: %w", cfg.Length, err)
	}
	short, err := timeparse.Minutes(cfg.ShortBreak)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid short break %q: %w", cfg.ShortBreak, err)
	}
	long, err := timeparse.Minutes(cfg.LongBreak)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid long break %q: %w", cfg.LongBreak, err)
	}
	return Settings{
		Length:     time.Duration(length) * time.Minute,
		ShortBreak: time.Duration(short) * time.Minute,
		LongBreak:  time.Duration(long) * time.Minute,
		Cycles:     cfg.Cycles,
		LongEvery:  cfg.LongEvery,
	}, nil
}

// Blocks expands the settings into the full session sequence: work
// blocks separated by breaks, a long break after every LongEvery-th work
// block, and no break after the last one.
func Blocks(s Settings) []Block {
	var blocks []Block
	for i := 1; i <= s.Cycles; i++ {
		blocks = append(blocks, Block{Kind: Work, Duration: s.Length})
		if i == s.Cycles {
			break
		}
		if s.LongEvery > 0 && i%s.LongEvery == 0 {
			blocks = append(blocks, Block{Kind: LongBreak, Duration: s.LongBreak})
		} else {
			blocks = append(blocks, Block{Kind: ShortBreak, Duration: s.ShortBreak})
		}
	}
	return blocks
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// Model is the bubbletea model for a pomodoro session.
type Model struct {
	services *service.Services
	taskID   int64
	note     string

	blocks    []Block
	index     int
	remaining time.Duration
	tracking  bool
	done      bool
	err       error

	prog progress.Model
}

// New builds a session model for the task.
func New(services *service.Services, settings Settings, taskID int64, note string) Model {
	blocks := Blocks(settings)
	var first time.Duration
	if len(blocks) > 0 {
		first = blocks[0].Duration
	}
	return Model{
		services:  services,
		taskID:    taskID,
		note:      note,
		blocks:    blocks,
		remaining: first,
		prog:      progress.New(progress.WithDefaultGradient()),
	}
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.enterBlock(), tick())
}

// enterBlock starts tracking when the current block is a work block.
func (m *Model) enterBlock() tea.Cmd {
	if m.index >= len(m.blocks) {
		m.done = true
		return tea.Quit
	}
	if m.blocks[m.index].Kind == Work {
		if _, err := m.services.Tracker.Start(m.taskID, m.note); err != nil {
			m.err = err
			return tea.Quit
		}
		m.tracking = true
	}
	m.remaining = m.blocks[m.index].Duration
	return nil
}

// leaveBlock closes the tracked entry when leaving a work block.
func (m *Model) leaveBlock() {
	if !m.tracking {
		return
	}
	if _, err := m.services.Tracker.Stop(m.taskID); err != nil {
		m.err = err
	}
	m.tracking = false
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.leaveBlock()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.prog.Width = width
		}
		return m, nil

	case tickMsg:
		if m.done || m.err != nil {
			return m, tea.Quit
		}
		m.remaining -= time.Second
		if m.remaining > 0 {
			return m, tick()
		}
		m.leaveBlock()
		m.index++
		if cmd := m.enterBlock(); cmd != nil {
			return m, cmd
		}
		return m, tick()
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.done || m.err != nil || m.index >= len(m.blocks) {
		return ""
	}

	block := m.blocks[m.index]
	elapsed := block.Duration - m.remaining
	ratio := 0.0
	if block.Duration > 0 {
		ratio = float64(elapsed) / float64(block.Duration)
	}

	works := 0
	for i := 0; i <= m.index && i < len(m.blocks); i++ {
		if m.blocks[i].Kind == Work {
			works++
		}
	}
	totalWorks := 0
	for _, b := range m.blocks {
		if b.Kind == Work {
			totalWorks++
		}
	}

	header := titleStyle.Render(fmt.Sprintf("Pomodoro %d/%d: %s", works, totalWorks, block.Kind))
	clock := fmt.Sprintf("%02d:%02d", int(m.remaining.Minutes()), int(m.remaining.Seconds())%60)
	help := faintStyle.Render("q to stop")

	return fmt.Sprintf("\n  %s\n\n  %s  %s\n\n  %s\n", header, m.prog.ViewAs(ratio), clock, help)
}

// Run drives a full session for the task, blocking until it finishes or
// the user quits.
func Run(services *service.Services, cfg config.PomodoroConfig, taskID int64, note string) error {
	settings, err := ParseConfig(cfg)
	if err != nil {
		return err
	}
	model := New(services, settings, taskID, note)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
