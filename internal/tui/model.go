// Package tui is the interactive terminal front-end: scan a project,
// review the planned renames in a table, then run them with live progress.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/hwrename"
	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/mydehq/hwrename/internal/worker"
)

type state int

const (
	stateInitial state = iota
	stateScanning
	stateConfirmation
	stateRenaming
	stateFinished
)

const (
	taskScan   = "scan"
	taskRename = "rename"

	maxEvents = 100
)

var (
	titleStyle    = ui.StyleCommand
	subTitleStyle = ui.StyleDim

	infoStyle    = ui.StyleCommand
	successStyle = ui.StyleHeader
	warningStyle = ui.StyleWarn
	errorStyle   = ui.StyleError

	actionBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Background(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Padding(0, 1)

	actionBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Background(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Padding(0, 1).
				Bold(true)
)

// workerMsg wraps a message read from the worker outbox
type workerMsg worker.Message

// scanOutput is the value of a finished scan task
type scanOutput struct {
	cfg     *types.Config
	results []types.ScanResult
}

type Model struct {
	state      state
	configPath string
	pacing     time.Duration
	err        error
	quitting   bool

	worker *worker.Worker

	// Content
	cfg      *types.Config
	results  []types.ScanResult
	statuses []string
	plan     types.RenamePlan
	renamed  []types.RenameResult
	done     types.Progress
	table    table.Model
	bar      progress.Model

	// Logs
	events []string

	width  int
	height int
}

// NewModel creates the model for the project file at configPath. w must
// be started; the model is its only consumer.
func NewModel(configPath string, pacing time.Duration, w *worker.Worker) Model {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		absPath = configPath
	}

	t := table.New(
		table.WithColumns(columns(100)),
		table.WithFocused(true),
		table.WithHeight(10), // dynamically updated
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		state:      stateInitial,
		configPath: absPath,
		pacing:     pacing,
		worker:     w,
		table:      t,
		bar:        progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == stateInitial || m.state == stateConfirmation || m.state == stateFinished {
				m.quitting = true
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInitial, stateFinished:
				m.startScan()
				return m, nil
			case stateConfirmation:
				if len(m.plan) > 0 {
					m.startRename()
				}
				return m, nil
			}

		case "backspace":
			if m.state == stateConfirmation {
				m.state = stateInitial
				return m, nil
			}
		}

	case workerMsg:
		m.handleWorker(worker.Message(msg))
		return m, m.listen()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
	}

	switch m.state {
	case stateConfirmation, stateFinished, stateRenaming:
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// listen waits for the next worker message
func (m Model) listen() tea.Cmd {
	out := m.worker.Messages()
	return func() tea.Msg {
		msg, ok := <-out
		if !ok {
			return nil
		}
		return workerMsg(msg)
	}
}

func (m *Model) startScan() {
	path := m.configPath
	err := m.worker.Submit(taskScan, func(ctx context.Context, report func(any)) (any, error) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if cfg.WorkingDirectory != "" && !filepath.IsAbs(cfg.WorkingDirectory) {
			cfg.WorkingDirectory = filepath.Join(filepath.Dir(path), cfg.WorkingDirectory)
		}
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
		results, err := hwrename.Scan(ctx, cfg, hwrename.WithEvents(func(e hwrename.Event) {
			report(e)
		}))
		if err != nil {
			return nil, err
		}
		return scanOutput{cfg: cfg, results: results}, nil
	})
	if m.submitFailed(err) {
		return
	}

	m.state = stateScanning
	m.err = nil
	m.events = nil
	m.results = nil
	m.plan = nil
	m.renamed = nil
	m.updateTable()
}

func (m *Model) startRename() {
	dir := m.cfg.WorkingDirectory
	plan := m.plan
	pacing := m.pacing
	err := m.worker.Submit(taskRename, func(ctx context.Context, report func(any)) (any, error) {
		return hwrename.Rename(ctx, dir, plan,
			hwrename.WithPacing(pacing),
			hwrename.WithEvents(func(e hwrename.Event) {
				report(e)
			}))
	})
	if m.submitFailed(err) {
		return
	}

	m.state = stateRenaming
	m.err = nil
	m.events = nil
	m.done = types.Progress{Total: len(plan)}
	for _, item := range plan {
		m.statuses[item.Index] = subTitleStyle.Render(ui.StatusPending)
	}
	m.updateTable()
	m.resizeTable()
}

// submitFailed records a refused submission. A busy worker is ignored so
// repeated keys cannot start a second batch.
func (m *Model) submitFailed(err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, types.ErrBusy) {
		m.err = err
	}
	return true
}

func (m *Model) handleWorker(msg worker.Message) {
	switch msg.Kind {
	case worker.KindProgress:
		if e, ok := msg.Value.(hwrename.Event); ok {
			m.handleEvent(e)
		}

	case worker.KindFailed:
		m.err = msg.Err
		m.state = stateInitial

	case worker.KindDone:
		switch v := msg.Value.(type) {
		case scanOutput:
			m.cfg = v.cfg
			m.results = v.results
			m.plan = hwrename.Plan(v.results)
			m.statuses = make([]string, len(v.results))
			for i, r := range v.results {
				m.statuses[i] = ui.StyledScanStatus(r)
			}
			m.state = stateConfirmation
		case []types.RenameResult:
			m.renamed = v
			m.state = stateFinished
		}
		m.updateTable()
		m.resizeTable()
	}
}

func (m *Model) handleEvent(e hwrename.Event) {
	if e.Type == hwrename.EventProgress && e.Progress != nil {
		m.done = *e.Progress
		res := e.Progress.Result
		if res.Index >= 0 && res.Index < len(m.statuses) {
			m.statuses[res.Index] = ui.StyledOutcome(res.Outcome)
			m.updateTable()
		}
		return
	}

	var styledMsg string
	switch e.Type {
	case hwrename.EventSuccess:
		styledMsg = successStyle.Render(e.Message)
	case hwrename.EventWarning:
		styledMsg = warningStyle.Render(e.Message)
	case hwrename.EventError:
		styledMsg = errorStyle.Render(e.Message)
	default:
		styledMsg = infoStyle.Render(e.Message)
	}

	m.events = append(m.events, fmt.Sprintf("[%s] %s", e.Type, styledMsg))
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m *Model) updateTable() {
	rows := make([]table.Row, 0, len(m.results))
	for i, r := range m.results {
		status := ""
		if i < len(m.statuses) {
			status = m.statuses[i]
		}
		rows = append(rows, table.Row{strconv.Itoa(i + 1), r.Target, r.MatchedFile, r.NewName, status})
	}
	m.table.SetRows(rows)
}

func columns(width int) []table.Column {
	// Calculate widths dynamically for full-width layout
	totalW := width - 4 // Padding compensation
	indexW := 4
	statusW := 16
	targetW := 16
	flexW := (totalW - indexW - statusW - targetW) / 2

	if flexW < 10 {
		flexW = 10
	}

	return []table.Column{
		{Title: "#", Width: indexW},
		{Title: "Target", Width: targetW},
		{Title: "Matched File", Width: flexW},
		{Title: "New Name", Width: flexW},
		{Title: "Status", Width: statusW},
	}
}

func (m *Model) resizeTable() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	m.table.SetColumns(columns(m.width))
	m.bar.Width = m.width - 8

	// Calculate height
	headerH := 4 // Title + Path + padding
	footerH := 2 // Action bar
	contentH := m.height - headerH - footerH

	if m.state == stateRenaming {
		// Split space between table and logs
		contentH = contentH / 2
	}

	if contentH < 5 {
		contentH = 5
	}

	m.table.SetHeight(contentH - 2) // -2 for table borders
}

func (m Model) renderActionBar(actions []string) string {
	var rendered []string
	for _, a := range actions {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 {
			rendered = append(rendered, actionBarKeyStyle.Render(parts[0])+actionBarMsgStyle.Render(parts[1]))
		}
	}
	bar := strings.Join(rendered, lipgloss.NewStyle().Background(lipgloss.Color("57")).Render("  "))

	// Pad the rest of the bar to full width
	padW := m.width - lipgloss.Width(bar)
	if padW < 0 {
		padW = 0
	}
	padding := lipgloss.NewStyle().Background(lipgloss.Color("57")).Render(strings.Repeat(" ", padW))

	return bar + padding
}

func (m Model) percent() float64 {
	if m.done.Total == 0 {
		return 0
	}
	return float64(m.done.Completed) / float64(m.done.Total)
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}

	var s strings.Builder

	// 1. Top Bar (Header)
	header := fmt.Sprintf("%s  %s", titleStyle.Render("HWRENAME"), subTitleStyle.Render("CONFIG: "+m.configPath))
	s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(header))
	s.WriteString("\n")

	// 2. Main Content
	var contentView string
	var actionBarView string
	placeH := m.height - 6

	switch m.state {
	case stateInitial:
		if m.err != nil {
			contentView = lipgloss.Place(m.width, placeH, lipgloss.Center, lipgloss.Center, errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Enter to try again.", m.err)))
		} else {
			contentView = lipgloss.Place(m.width, placeH, lipgloss.Center, lipgloss.Center, "Press Enter to Scan Directory")
		}
		actionBarView = m.renderActionBar([]string{"Enter Scan", "q Quit"})

	case stateScanning:
		contentView = lipgloss.Place(m.width, placeH, lipgloss.Center, lipgloss.Center, infoStyle.Render("Scanning directory and matching targets..."))
		actionBarView = m.renderActionBar([]string{"ctrl+c Abort"})

	case stateConfirmation:
		statStr := subTitleStyle.Render(ui.SummaryLine(hwrename.Summarize(m.results)))
		if len(m.plan) == 0 {
			statStr += "\n" + warningStyle.Render("No files to rename.")
			actionBarView = m.renderActionBar([]string{"Enter Rescan", "Backspace Back", "↑/↓ Scroll", "q Quit"})
		} else {
			actionBarView = m.renderActionBar([]string{"Enter Execute Rename", "Backspace Back", "↑/↓ Scroll", "q Quit"})
		}
		contentView = lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n\n" + m.table.View())

	case stateRenaming:
		// Top Half: Table
		statStr := infoStyle.Render(fmt.Sprintf("Renaming... %d of %d done", m.done.Completed, m.done.Total))
		barView := m.bar.ViewAs(m.percent())
		tableView := lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n" + barView + "\n\n" + m.table.View())

		// Bottom Half: Logs
		logBuilder := strings.Builder{}
		logH := placeH / 2
		if logH < 5 {
			logH = 5
		}

		maxLogs := logH - 2
		if maxLogs < 0 {
			maxLogs = 0
		}

		startIdx := 0
		if len(m.events) > maxLogs {
			startIdx = len(m.events) - maxLogs
		}
		logLines := m.events[startIdx:]
		if len(logLines) == 0 {
			logBuilder.WriteString(subTitleStyle.Render("Waiting for events..."))
		} else {
			logBuilder.WriteString(strings.Join(logLines, "\n"))
		}

		logBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(m.width - 6).
			Height(maxLogs + 1).
			Render(titleStyle.Render("Event Logs") + "\n" + logBuilder.String())

		logView := lipgloss.NewStyle().Padding(1, 2).Render(logBox)

		contentView = lipgloss.JoinVertical(lipgloss.Left, tableView, logView)
		actionBarView = m.renderActionBar([]string{"ctrl+c Quit"})

	case stateFinished:
		success, failed := 0, 0
		for _, r := range m.renamed {
			if r.Outcome.Failed() {
				failed++
			} else {
				success++
			}
		}

		summary := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("34")).Render(
			fmt.Sprintf("%s\nRenamed %d files, %d failed.", successStyle.Bold(true).Render("COMPLETED"), success, failed),
		)

		contentView = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Padding(0, 2).Render(summary),
			lipgloss.NewStyle().Padding(1, 2).Render(m.table.View()),
		)
		actionBarView = m.renderActionBar([]string{"Enter Rescan", "↑/↓ Scroll", "q Quit"})
	}

	s.WriteString(contentView)

	// Force the action bar to the absolute bottom via newlines
	currentLines := strings.Count(s.String(), "\n")
	neededNewLines := (m.height - 2) - currentLines
	if neededNewLines > 0 {
		s.WriteString(strings.Repeat("\n", neededNewLines))
	} else {
		s.WriteString("\n")
	}
	s.WriteString(actionBarView)

	return s.String()
}
