package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/purgatorium/encounter"
	"github.com/milk9111/purgatorium/note"
	"github.com/milk9111/purgatorium/prefabs"
	"github.com/milk9111/purgatorium/tracks"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type hostState int

const (
	statePlaying hostState = iota
	statePaused
	stateOver
	stateCleared
)

func (s hostState) String() string {
	switch s {
	case statePlaying:
		return "playing"
	case statePaused:
		return "paused"
	case stateOver:
		return "game over"
	case stateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

type Game struct {
	frames int

	preset        string
	trackOverride string
	debug         bool

	enc     *encounter.Encounter
	palette palette
	track   string
	state   hostState

	// rejectFlash counts down frames after a refused barrier request.
	rejectFlash int

	input   *Input
	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	uiState hostState
	quit    bool
}

func NewGame(preset, track string, debug bool) (*Game, error) {
	g := &Game{
		preset:        preset,
		trackOverride: track,
		debug:         debug,
		input:         NewInput(),
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

// load builds a fresh encounter from the preset. A track that fails to load
// is logged and the encounter runs without notes.
func (g *Game) load() error {
	spec, err := prefabs.LoadEncounterSpec(g.preset)
	if err != nil {
		return err
	}
	cfg, err := encounter.ConfigFromSpec(spec)
	if err != nil {
		return err
	}

	trackName := g.trackOverride
	if trackName == "" {
		trackName = cfg.Track
	}
	if trackName == "" {
		trackName = tracks.Default
	}

	events, err := tracks.Load(trackName)
	if err != nil {
		log.Printf("game: track=%s load failed, running empty: %v", trackName, err)
		events = nil
	}

	enc, err := encounter.New(cfg, events)
	if err != nil {
		return err
	}

	g.enc = enc
	g.track = trackName
	g.palette = paletteFromSpec(spec.Palette)
	g.state = statePlaying
	g.rejectFlash = 0
	if g.debug {
		log.Printf("game: loaded preset=%s track=%s notes=%d aim=%s", cfg.Name, trackName, len(events), cfg.Aim.Strategy)
	}
	return nil
}

// EnableWatch starts hot reload of presets, scripts and tracks from disk.
func (g *Game) EnableWatch() {
	w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts", tracks.Dir)
	if err != nil {
		log.Printf("game: watch disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("game: close watcher: %v", err)
	}
}

func (g *Game) Restart() {
	g.enc.Reset()
	g.state = statePlaying
	g.rejectFlash = 0
}

func (g *Game) Resume() {
	if g.state == statePaused {
		g.state = statePlaying
	}
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.pollWatcher()

	intent := g.input.Poll()
	switch g.state {
	case statePlaying:
		if intent.Pause {
			g.state = statePaused
			break
		}
		dt := 1 / float64(ebiten.TPS())
		if g.enc.Update(dt, intent) == encounter.GameOver {
			g.state = stateOver
		} else if g.enc.Finished() {
			g.state = stateCleared
		}
		g.drainEvents()
	case statePaused:
		if intent.Pause {
			g.state = statePlaying
		}
	case stateOver, stateCleared:
		if g.input.RestartPressed() {
			g.Restart()
		}
	}

	if g.rejectFlash > 0 {
		g.rejectFlash--
	}

	if g.state != statePlaying {
		if g.ui == nil || g.uiState != g.state {
			g.ui = NewOverlayUI(g, g.state)
			g.uiState = g.state
		}
		g.ui.Update()
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}

	select {
	case err := <-g.watcher.Errors:
		log.Printf("game: watch: %v", err)
	default:
	}

	changes := g.watcher.Poll()
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		log.Printf("game: reload %s %s", c.Kind, c.Path)
	}
	if err := g.load(); err != nil {
		// keep the running encounter when the edited file is broken
		log.Printf("game: reload failed: %v", err)
	}
}

func (g *Game) drainEvents() {
	for _, evt := range g.enc.Events().Drain() {
		if evt.Kind == encounter.EventBarrierRejected {
			g.rejectFlash = 20
		}
		if !g.debug {
			continue
		}
		switch evt.Kind {
		case encounter.EventProjectileSpawned:
			log.Printf("game: t=%.3f %s note=%s", evt.Time, evt.Kind, note.Name(evt.Note.Pitch))
		default:
			log.Printf("game: t=%.3f %s at (%.0f, %.0f)", evt.Time, evt.Kind, evt.Position.X, evt.Position.Y)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	drawArena(screen, g.enc, g.palette)
	drawBarrier(screen, g.enc, g.palette)
	drawProjectiles(screen, g.enc)
	drawAdversary(screen, g.enc, g.palette)
	drawPlayer(screen, g.enc, g.palette, g.rejectFlash > 0)

	ebitenutil.DebugPrint(screen, g.hud())

	if g.state != statePlaying && g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) hud() string {
	b := g.enc.Barrier()
	tl := g.enc.Timeline()
	s := fmt.Sprintf("Time: %.1f    Barrier: %d (%s)    Notes: %d/%d    Shots: %d",
		g.enc.Elapsed(), b.UsesRemaining(), b.State(), tl.Cursor(), tl.Len(), len(g.enc.Projectiles()))
	if g.debug {
		s += fmt.Sprintf("\nFrames: %d    FPS: %.2f    TPS: %.2f    Track: %s    State: %s",
			g.frames, ebiten.ActualFPS(), ebiten.ActualTPS(), g.track, g.state)
	}
	return s
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
