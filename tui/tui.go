// Package tui shows the bot's board and per-direction scores as it plays.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brensch/cycles/bot"
	"github.com/brensch/cycles/game"
	tea "github.com/charmbracelet/bubbletea"
	channerics "github.com/niceyeti/channerics/channels"
)

const recentTicks = 8

// Feed is a bot.Observer that hands reports to the UI. A full buffer drops
// the report so the tick loop never waits on rendering.
type Feed struct {
	mu      sync.Mutex
	ch      chan bot.TickReport
	closed  bool
	dropped int
}

var _ bot.Observer = (*Feed)(nil)

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 1
	}
	return &Feed{ch: make(chan bot.TickReport, size)}
}

func (f *Feed) ObserveTick(r bot.TickReport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- r:
	default:
		f.dropped++
	}
}

// Dropped counts reports discarded because the UI fell behind.
func (f *Feed) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *Feed) Updates() <-chan bot.TickReport { return f.ch }

// Close tells the UI the game is over.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

type (
	reportMsg    bot.TickReport
	feedEndedMsg struct{}
	clockMsg     time.Time
)

type Model struct {
	name    string
	updates <-chan bot.TickReport

	startTime time.Time
	now       time.Time
	ticks     int
	latest    *bot.TickReport
	recent    []string
	ended     bool
}

func NewModel(name string, updates <-chan bot.TickReport) Model {
	now := time.Now()
	return Model{
		name:      name,
		updates:   updates,
		startTime: now,
		now:       now,
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), clockCmd())
}

func waitForUpdate(updates <-chan bot.TickReport) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-updates
		if !ok {
			return feedEndedMsg{}
		}
		return reportMsg(r)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case clockMsg:
		m.now = time.Time(msg)
		return m, clockCmd()
	case reportMsg:
		r := bot.TickReport(msg)
		m.latest = &r
		m.ticks++
		line := fmt.Sprintf("Frame %d: %s (score %d, %s)", r.Frame, r.Decision.Direction, r.Decision.Score, r.Elapsed.Round(time.Microsecond))
		if !r.SelfFound {
			line += " [self missing]"
		}
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > recentTicks {
			m.recent = m.recent[:recentTicks]
		}
		return m, waitForUpdate(m.updates)
	case feedEndedMsg:
		m.ended = true
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	duration := m.now.Sub(m.startTime)
	fmt.Fprintf(&b, "Bot:      %s\n", m.name)
	fmt.Fprintf(&b, "Ticks:    %d\n", m.ticks)
	fmt.Fprintf(&b, "Duration: %s\n\n", duration.Round(time.Second))

	if r := m.latest; r != nil {
		if r.State != nil {
			b.WriteString(game.Summary(r.State))
			b.WriteString("\n")
			b.WriteString(game.Render(r.State, m.name))
			b.WriteString("\n")
		}
		for _, mv := range r.Decision.Moves {
			marker := " "
			if mv.Direction == r.Decision.Direction {
				marker = ">"
			}
			if mv.Legal {
				fmt.Fprintf(&b, "%s %-5s %4d  area=%d risk=%d\n", marker, mv.Direction, mv.Score, mv.Area, mv.Risk)
			} else {
				fmt.Fprintf(&b, "%s %-5s  --   illegal\n", marker, mv.Direction)
			}
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Waiting for the first state...\n\n")
	}

	b.WriteString("Recent ticks:\n")
	for _, line := range m.recent {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.ended {
		b.WriteString("\nGame over. Press q to quit.\n")
	} else {
		b.WriteString("\nPress q to quit.\n")
	}
	return b.String()
}

// Run shows the UI until the user quits or ctx ends.
func Run(ctx context.Context, name string, feed *Feed) error {
	updates := channerics.OrDone(ctx.Done(), feed.Updates())
	p := tea.NewProgram(NewModel(name, updates), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
