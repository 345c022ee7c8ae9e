package sandbox

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/zeminka/vmath"
)

const (
	flashDecay    = 0.4 // seconds until a contact flash fades
	flashMin      = 0.05
	statusRows    = 1
	eventChanSize = 100
)

// masterVolumer is implemented by players with a global volume
type masterVolumer interface {
	MasterVolume() float64
	SetMasterVolume(vol float64)
}

type flash struct {
	x, y      int
	intensity float64
}

var bodyStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tcell.StyleDefault.Foreground(tcell.ColorBlue),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorPurple),
}

// Game renders a World top-down on a terminal and steers body 0 with the arrow keys
//
//	arrows  push the steered body
//	space   stop the steered body
//	m       toggle mute
//	q, Esc  quit
type Game struct {
	screen tcell.Screen
	world  *World
	logger *zap.Logger

	width, height int
	flashes       []flash
	muted         bool
	unmuteVolume  float64 // master volume to restore on unmute
	paused        bool
}

// NewGame binds an initialized screen to w
func NewGame(screen tcell.Screen, w *World, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		screen:  screen,
		world:   w,
		logger:  logger,
		flashes: make([]flash, 0, 16),
	}
	g.width, g.height = screen.Size()
	return g
}

// Muted reports whether sound is muted
func (g *Game) Muted() bool {
	return g.muted
}

// Run drives the update loop until quit or ctx is done
// The caller owns the screen and must Fini it afterwards
func (g *Game) Run(ctx context.Context) error {
	tick := g.world.Config().Tick()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventCh := make(chan tcell.Event, eventChanSize)
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	go g.pollLoop(eventCh, stopCh, doneCh)
	defer func() {
		close(stopCh)
		// Synthetic event unblocks PollEvent
		g.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-doneCh
	}()

	g.logger.Info("sandbox started", zap.Int("bodies", g.world.Len()), zap.Duration("tick", tick))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventCh:
			if !g.handleEvent(ev) {
				g.logger.Info("sandbox quit", zap.Int("collisions", g.world.Collisions()))
				return nil
			}

		case now := <-ticker.C:
			g.update(now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}

func (g *Game) pollLoop(eventCh chan<- tcell.Event, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		ev := g.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case eventCh <- ev:
		case <-stopCh:
			return
		}
	}
}

// handleEvent applies one input event; returns false to quit
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		thrust := g.world.Config().Thrust
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.world.Push(0, vmath.V3(0, -thrust, 0))
		case tcell.KeyDown:
			g.world.Push(0, vmath.V3(0, thrust, 0))
		case tcell.KeyLeft:
			g.world.Push(0, vmath.V3(-thrust, 0, 0))
		case tcell.KeyRight:
			g.world.Push(0, vmath.V3(thrust, 0, 0))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'm':
				g.toggleMute()
			case 'p':
				g.paused = !g.paused
			case ' ':
				if b := g.world.Body(0); b != nil {
					b.Velocity = mgl64.Vec3{}
				}
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) toggleMute() {
	mv, ok := g.world.player.(masterVolumer)
	if !ok {
		return
	}
	g.muted = !g.muted
	if g.muted {
		g.unmuteVolume = mv.MasterVolume()
		mv.SetMasterVolume(0)
	} else {
		mv.SetMasterVolume(g.unmuteVolume)
	}
	g.logger.Debug("mute toggled", zap.Bool("muted", g.muted))
}

// update steps the world and decays contact flashes
func (g *Game) update(dt float64) {
	if g.paused {
		return
	}
	for _, ev := range g.world.Step(dt) {
		x, y := g.project(ev.Contact.Point)
		g.flashes = append(g.flashes, flash{x: x, y: y, intensity: 1})
	}

	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.intensity -= dt / flashDecay
		if f.intensity > flashMin {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// project maps world X/Y onto the drawable area above the status line
func (g *Game) project(p mgl64.Vec3) (int, int) {
	cfg := g.world.Config()
	rows := g.height - statusRows
	if g.width <= 0 || rows <= 0 {
		return 0, 0
	}
	x := int(math.Floor(p.X() / cfg.Width * float64(g.width)))
	y := int(math.Floor(p.Y() / cfg.Height * float64(rows)))
	return clampInt(x, 0, g.width-1), clampInt(y, 0, rows-1)
}

func (g *Game) draw() {
	g.screen.Clear()

	for i := 1; i < g.world.Len(); i++ {
		g.drawBody(i, 'o', bodyStyles[(i-1)%len(bodyStyles)])
	}
	if g.world.Len() > 0 {
		g.drawBody(0, '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	}

	for _, f := range g.flashes {
		level := int32(math.Min(f.intensity, 1) * 255)
		color := tcell.NewRGBColor(level, level, 0)
		g.screen.SetContent(f.x, f.y, '*', nil, tcell.StyleDefault.Foreground(color))
	}

	g.drawStatus()
	g.screen.Show()
}

// drawBody fills the cells covered by body i's footprint
func (g *Game) drawBody(i int, r rune, style tcell.Style) {
	box := g.world.Body(i).Box
	x0, y0 := g.project(box.Min())
	x1, y1 := g.project(box.Max())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (g *Game) drawStatus() {
	if g.height < statusRows {
		return
	}
	status := fmt.Sprintf(" bodies %d  collisions %d", g.world.Len(), g.world.Collisions())
	if b := g.world.Body(0); b != nil {
		status += fmt.Sprintf("  speed %.1f", b.Velocity.Len())
	}
	if g.muted {
		status += "  [muted]"
	}
	if g.paused {
		status += "  [paused]"
	}

	style := tcell.StyleDefault.Reverse(true)
	y := g.height - 1
	for x := 0; x < g.width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		g.screen.SetContent(x, y, r, nil, style)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
