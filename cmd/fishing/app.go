package main

import (
	"context"
	"time"

	"fishing-game/client"
	"fishing-game/game"

	"github.com/gdamore/tcell/v2"
)

const steerStep = 40.0

// app owns the loop. Input and frames are both handled on the run goroutine,
// so the steering target is never touched concurrently.
type app struct {
	screen    tcell.Screen
	loop      *game.Loop
	scores    *client.Client
	view      viewport
	showBoard bool
	dragging  bool
}

func newApp(screen tcell.Screen, loop *game.Loop, scores *client.Client) *app {
	return &app{screen: screen, loop: loop, scores: scores}
}

func (a *app) run(ctx context.Context) error {
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

	ticker := time.NewTicker(game.NominalFrame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.loop.Frame(now)
			a.draw()
		}
	}
}

// handle applies one input event and reports whether the player quit.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyEnter:
			a.start()
		case tcell.KeyLeft:
			a.loop.Nudge(-steerStep)
		case tcell.KeyRight:
			a.loop.Nudge(steerStep)
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, _ := ev.Position()
		if ev.Buttons()&tcell.Button1 == 0 {
			a.dragging = false
			return false
		}
		if !a.dragging {
			a.start()
		}
		a.dragging = true
		a.loop.SetTarget(a.view.worldX(x))
	}
	return false
}

// start drops the hook if the round is idle. Start requests during a round
// are ignored.
func (a *app) start() {
	if a.loop.Phase() == game.PhaseIdle {
		_ = a.loop.Start()
	}
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case ' ':
		a.start()
	case 'r':
		if a.loop.Over() {
			a.loop.Reset()
		}
	case 'l':
		a.showBoard = !a.showBoard
		if a.showBoard {
			a.scores.RefreshAsync()
		}
	}
	return false
}

func (a *app) draw() {
	w, h := a.screen.Size()
	a.view = newViewport(a.loop.State(), w, h)
	render(a.screen, a.view, a.loop, a.scores.Leaderboard(), a.showBoard)
	a.screen.Show()
}
