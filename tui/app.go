package tui

import (
	"context"
	"log"
	"time"

	"github.com/beka-birhanu/vinom-walker/agent"
	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/session"
	"github.com/gdamore/tcell/v2"
)

// KeyIntent maps a key press to a manual walker intent.
func KeyIntent(ev *tcell.EventKey) (agent.Intent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return agent.Forward, true
	case tcell.KeyDown:
		return agent.Backward, true
	case tcell.KeyLeft:
		return agent.TurnLeft, true
	case tcell.KeyRight:
		return agent.TurnRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			return agent.Forward, true
		case 's':
			return agent.Backward, true
		case 'a':
			return agent.TurnLeft, true
		case 'd':
			return agent.TurnRight, true
		case 'q':
			return agent.StrafeLeft, true
		case 'e':
			return agent.StrafeRight, true
		}
	}
	return 0, false
}

// App runs a session at a fixed tick rate and redraws it after every tick.
type App struct {
	screen     tcell.Screen
	session    *session.Session
	renderer   *Renderer
	tickEvery  time.Duration
	collisions bool
	logger     *log.Logger
}

func NewApp(screen tcell.Screen, s *session.Session, tickRate int, logger *log.Logger) *App {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &App{
		screen:     screen,
		session:    s,
		renderer:   NewRenderer(screen),
		tickEvery:  time.Second / time.Duration(tickRate),
		collisions: true,
		logger:     logger,
	}
}

// Run ticks and draws until ctx is done or the user quits. The caller owns the screen.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.tickEvery)
	defer ticker.Stop()
	a.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-ticker.C:
			a.session.Tick()
			a.Draw()
		}
	}
}

// Draw renders the current session state.
func (a *App) Draw() {
	a.renderer.Draw(a.session.Frame(), a.session.Snapshot())
}

// HandleKey applies one key press. It returns false when the user asked to quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	}

	if intent, ok := KeyIntent(ev); ok {
		a.session.Steer(intent)
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}

	switch r := ev.Rune(); r {
	case 'p':
		a.session.SetAuto(!a.session.Snapshot().Agent.Auto)
	case 'c':
		a.collisions = !a.collisions
		a.session.SetCollisionsEnabled(a.collisions)
		a.logger.Printf("%s[INFO]%s collisions enabled: %t", config.LogInfoColor, config.LogColorReset, a.collisions)
	default:
		mode, ok := modeKeys[r]
		if !ok {
			return true
		}
		if err := a.session.Regenerate(mode, 0); err != nil {
			a.logger.Printf("%s[ERROR]%s switching to %s: %s", config.LogErrorColor, config.LogColorReset, mode, err)
		}
	}
	return true
}
