// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/router"
	"github.com/abhisek/sparky/internal/screen"
	"github.com/abhisek/sparky/internal/screens/grade"
	"github.com/abhisek/sparky/internal/screens/home"
	"github.com/abhisek/sparky/internal/screens/welcome"
	"github.com/abhisek/sparky/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Service *practice.Service

	// Offline is set when questions come from the built-in bank.
	Offline bool

	// LatestVersion is shown on the home screen when an update exists.
	LatestVersion string

	// SkipSplash starts directly on the home or grade screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *practice.Service
	router *router.Router
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(ctx, opts.Service, home.Options{
			Offline:       opts.Offline,
			LatestVersion: opts.LatestVersion,
		})
	}
	start := func() screen.Screen {
		if opts.Service.Profile().HasGrade() {
			return homeFactory()
		}
		return grade.New(ctx, opts.Service, homeFactory)
	}

	var first screen.Screen
	if opts.SkipSplash {
		first = start()
	} else {
		first = welcome.New(start)
	}
	return AppModel{svc: opts.Service, router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	p := m.svc.Profile()
	if !p.HasGrade() {
		return layout.HeaderInfo{}
	}
	return layout.HeaderInfo{
		Grade:  p.Grade,
		Streak: p.CurrentStreak,
		Level:  m.svc.Level().DisplayName(),
	}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		if hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
