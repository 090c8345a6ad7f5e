package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/benchseed/pkg/dataset"
	"github.com/marshallshelly/benchseed/pkg/db"
)

// SeedMode represents the current mode of the seeding UI
type SeedMode int

const (
	ModeConfirm SeedMode = iota
	ModeRunning
	ModeComplete
	ModeError
)

type stageStatus int

const (
	stagePending stageStatus = iota
	stageRunning
	stageDone
	stageFailed
)

type stageRow struct {
	stage  dataset.Stage
	label  string
	status stageStatus
	done   int
	total  int
}

// SeedModel is the main Bubbletea model for interactive seeding
type SeedModel struct {
	mode         SeedMode
	confirmation ConfirmationDialog
	stages       []stageRow
	bar          progress.Model
	logs         LogView
	err          error
	width        int
	height       int
	dbURL        string
	params       dataset.Params
	events       chan tea.Msg
	run          *dataset.RunRecord
}

// Messages
type stageProgressMsg struct {
	stage dataset.Stage
	done  int
	total int
}

type seedDoneMsg struct {
	run *dataset.RunRecord
	err error
}

// NewSeedModel creates a new seeding UI model
func NewSeedModel(dbURL string, params dataset.Params) SeedModel {
	stages := []stageRow{
		{stage: dataset.StageReset, label: "Reset schema"},
		{stage: dataset.StageCategories, label: fmt.Sprintf("Categories (%d)", params.Categories)},
		{stage: dataset.StageTags, label: fmt.Sprintf("Tags (%d)", params.Tags)},
		{stage: dataset.StageProducts, label: fmt.Sprintf("Products (%d)", params.Products)},
	}
	if params.WithLinks {
		stages = append(stages, stageRow{stage: dataset.StageLinks, label: fmt.Sprintf("Product-tag links (%d)", params.Links)})
	}

	m := SeedModel{
		mode:   ModeConfirm,
		stages: stages,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		logs:   NewLogView(10),
		dbURL:  dbURL,
		params: params,
		events: make(chan tea.Msg, 64),
	}

	m.confirmation = NewConfirmationDialog(
		"Confirm Dataset Seed",
		fmt.Sprintf("This drops and recreates the dataset tables, then loads:\n%d categories, %d tags, %d products, links: %v",
			params.Categories, params.Tags, params.Products, params.WithLinks),
	)
	return m
}

// Init initializes the model
func (m SeedModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Commands
func (m SeedModel) startSeedCmd() tea.Cmd {
	events := m.events
	dbURL := m.dbURL
	params := m.params

	go func() {
		ctx := context.Background()

		pool, err := db.Connect(ctx, dbURL)
		if err != nil {
			events <- seedDoneMsg{err: fmt.Errorf("failed to connect to database: %w", err)}
			return
		}
		defer pool.Close()

		gen, err := dataset.NewGenerator(pool, params)
		if err != nil {
			events <- seedDoneMsg{err: err}
			return
		}
		gen.WithProgress(func(stage dataset.Stage, done, total int) {
			events <- stageProgressMsg{stage: stage, done: done, total: total}
		})

		run, err := gen.Run(ctx)
		events <- seedDoneMsg{run: run, err: err}
	}()

	return m.waitForEvent()
}

func (m SeedModel) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// Update handles messages
func (m SeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stageProgressMsg:
		for i := range m.stages {
			row := &m.stages[i]
			switch {
			case row.stage == msg.stage:
				if row.status == stagePending {
					m.logs.AddLog(infoStyle.Render("Started: " + row.label))
				}
				row.status = stageRunning
				row.done = msg.done
				row.total = msg.total
				if msg.total > 0 && msg.done >= msg.total {
					row.status = stageDone
					m.logs.AddLog(successStyle.Render("✓ Completed: " + row.label))
				}
			case row.status == stageRunning:
				// a later stage started; the previous one is finished
				row.status = stageDone
			}
		}
		return m, m.waitForEvent()

	case seedDoneMsg:
		m.run = msg.run
		if msg.err != nil {
			m.mode = ModeError
			m.err = msg.err
			for i := range m.stages {
				if m.stages[i].status == stageRunning {
					m.stages[i].status = stageFailed
				}
			}
			return m, nil
		}
		for i := range m.stages {
			m.stages[i].status = stageDone
		}
		m.mode = ModeComplete
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeConfirm:
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				return m, tea.Quit
			case "enter":
				if !m.confirmation.YesSelected {
					return m, tea.Quit
				}
				m.mode = ModeRunning
				m.logs.AddLog(infoStyle.Render("Connecting to database"))
				return m, m.startSeedCmd()
			default:
				return m, m.confirmation.Update(msg)
			}

		case ModeRunning:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case ModeComplete, ModeError:
			switch msg.String() {
			case "ctrl+c", "q", "enter":
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the UI
func (m SeedModel) View() string {
	switch m.mode {
	case ModeConfirm:
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.confirmation.View(),
		)

	case ModeRunning:
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			lipgloss.JoinVertical(
				lipgloss.Left,
				m.stageListView(),
				"\n",
				m.logs.View(),
			),
		)

	case ModeComplete:
		body := titleStyle.Render("Seeding Complete!") + "\n\n" +
			successStyle.Render(m.summary()) + "\n\n" +
			helpStyle.Render(FormatKey("enter/q", "exit"))

		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(body),
		)

	case ModeError:
		body := titleStyle.Render("Seeding Failed") + "\n\n" +
			errorStyle.Render(m.err.Error()) + "\n\n" +
			helpStyle.Render(FormatKey("enter/q", "exit"))

		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(body),
		)
	}

	return "Unknown mode"
}

func (m SeedModel) stageListView() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Seeding Dataset"), "")

	for _, row := range m.stages {
		icon := mutedStyle.Render("○")
		switch row.status {
		case stageRunning:
			icon = warningStyle.Render("◐")
		case stageDone:
			icon = successStyle.Render("✓")
		case stageFailed:
			icon = dangerStyle.Render("✗")
		}
		rows = append(rows, icon+" "+row.label)

		if row.status == stageRunning && row.total > 0 {
			pct := float64(row.done) / float64(row.total)
			rows = append(rows, "  "+m.bar.ViewAs(pct))
		}
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m SeedModel) summary() string {
	if m.run == nil {
		return "Dataset seeded"
	}
	return fmt.Sprintf("Loaded %d categories, %d tags, %d products (run %s)",
		m.run.Categories, m.run.Tags, m.run.Products, m.run.ID)
}

// RunSeedUI starts the interactive seeding UI
func RunSeedUI(dbURL string, params dataset.Params) error {
	p := tea.NewProgram(NewSeedModel(dbURL, params))
	_, err := p.Run()
	return err
}
