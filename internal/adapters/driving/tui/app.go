package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// ErrInterrupted is returned when the view is closed before the import finishes.
var ErrInterrupted = errors.New("tui: interrupted before the import finished")

// stepState is the display state of one pipeline step.
type stepState int

const (
	stepPending stepState = iota
	stepActive
	stepDone
	stepFailed
)

// step is one line of the progress view. A step starts on its start status
// and finishes on its done status.
type step struct {
	label   string
	start   domain.ProgressStatus
	done    domain.ProgressStatus
	state   stepState
	message string
}

func newSteps() []*step {
	return []*step{
		{label: "Extract recipe", start: domain.StatusExtracting, done: domain.StatusExtracted},
		{label: "Analyse nutrition", start: domain.StatusAnalyzing, done: domain.StatusAnalyzed},
		{label: "Write page", start: domain.StatusCreating, done: domain.StatusCreated},
	}
}

// App is the progress view for one recipe import, following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	req    driving.CreateRecipeRequest
	styles *styles.Styles
	keymap *keymap.KeyMap

	spinner spinner.Model
	bar     *status.Bar
	steps   []*step

	events <-chan domain.ProgressEvent

	// url is the page URL from the redirecting event.
	url string

	// err is the message of the error event.
	err error

	finished bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a progress view for req.
func NewApp(ports *Ports, req driving.CreateRecipeRequest) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Active

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		req:     req,
		styles:  s,
		keymap:  km,
		spinner: sp,
		bar:     status.NewBar(s, km),
		steps:   newSteps(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the import and the spinner.
func (a *App) Init() tea.Cmd {
	a.events = a.ports.Recipes.Stream(a.ctx, a.req)
	return tea.Batch(a.spinner.Tick, waitForEvent(a.events))
}

// waitForEvent reads the next event from the stream.
func waitForEvent(events <-chan domain.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return messages.StreamClosed{}
		}
		return messages.ProgressReceived{Event: event}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil

	case spinner.TickMsg:
		if a.finished {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.ProgressReceived:
		a.apply(msg.Event)
		if a.finished {
			return a, tea.Quit
		}
		return a, waitForEvent(a.events)

	case messages.StreamClosed:
		a.finished = true
		return a, tea.Quit
	}

	return a, nil
}

// apply records one event against the steps.
func (a *App) apply(event domain.ProgressEvent) {
	switch event.Status {
	case domain.StatusRedirecting:
		a.url = event.URL
		a.finished = true
		a.bar.SetState(status.StateDone)
		return
	case domain.StatusError:
		for _, st := range a.steps {
			if st.state == stepActive {
				st.state = stepFailed
			}
		}
		a.err = errors.New(event.Message)
		a.finished = true
		a.bar.SetState(status.StateError)
		a.bar.SetMessage(event.Message)
		return
	}

	for _, st := range a.steps {
		switch event.Status {
		case st.start:
			st.state = stepActive
			st.message = event.Message
		case st.done:
			st.state = stepDone
			st.message = event.Message
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Importing " + a.req.URL))
	b.WriteString("\n")

	for _, st := range a.steps {
		b.WriteString(a.renderStep(st))
		b.WriteString("\n")
	}

	if a.url != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Render("Page: "))
		b.WriteString(a.styles.Link.Render(a.url))
		b.WriteString("\n")
	}

	b.WriteString(a.bar.View())
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderStep(st *step) string {
	var icon, label string
	switch st.state {
	case stepActive:
		icon = a.spinner.View()
		label = a.styles.Active.Render(st.label)
	case stepDone:
		icon = a.styles.Success.Render("✓")
		label = a.styles.Normal.Render(st.label)
	case stepFailed:
		icon = a.styles.Error.Render("✗")
		label = a.styles.Error.Render(st.label)
	default:
		icon = a.styles.Muted.Render("·")
		label = a.styles.Muted.Render(st.label)
	}

	line := icon + " " + label
	if st.message != "" && st.state != stepPending {
		line += "  " + a.styles.Muted.Render(st.message)
	}
	return line
}

// URL returns the page URL once the import has finished.
func (a *App) URL() string {
	return a.url
}

// Err returns the import failure, ErrInterrupted when the view was closed
// early, or nil on success.
func (a *App) Err() error {
	if a.err != nil {
		return a.err
	}
	if a.url == "" {
		return ErrInterrupted
	}
	return nil
}

// Run shows the progress view until the import finishes or the user quits.
// It returns the page URL on success.
func Run(ctx context.Context, ports *Ports, req driving.CreateRecipeRequest, opts ...tea.ProgramOption) (string, error) {
	app, err := NewApp(ports, req)
	if err != nil {
		return "", err
	}
	app.WithContext(ctx)

	final, err := tea.NewProgram(app, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("TUI error: %w", err)
	}

	done, ok := final.(*App)
	if !ok {
		return "", fmt.Errorf("TUI error: unexpected model %T", final)
	}
	return done.URL(), done.Err()
}
