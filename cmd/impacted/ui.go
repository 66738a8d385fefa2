package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	impactedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list        list.Model
	lastUpdate  time.Time
	changed     int
	impacted    int
	lastRunTime time.Duration
}

type updateMsg struct {
	result *RunResult
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		res := msg.result
		m.changed = len(res.ChangedModules)
		m.impacted = len(res.ImpactedModules)
		m.lastRunTime = res.Duration
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, name := range res.ImpactedModules {
			items = append(items, item{title: name, desc: res.PathsByModule[name]})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var header string
	if m.impacted == 0 {
		header = successStyle.Render("no impacted tests")
	} else {
		header = impactedStyle.Render(fmt.Sprintf("%d impacted test modules", m.impacted))
	}

	status := statusStyle.Render(fmt.Sprintf(
		"changed modules: %d · last run: %s · updated %s",
		m.changed, m.lastRunTime.Round(time.Millisecond), m.lastUpdate.Format("15:04:05")))

	return docStyle.Render(titleStyle("impacted") + "\n" + header + "\n" + status + "\n" + m.list.View())
}

func runUI(app *App) error {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)

	p := tea.NewProgram(model{list: l}, tea.WithAltScreen())

	go func() {
		err := app.Watch(func(res *RunResult) {
			p.Send(updateMsg{result: res})
		})
		if err != nil {
			slog.Error("watch loop failed", "error", err)
			p.Quit()
		}
	}()

	_, err := p.Run()
	return err
}
