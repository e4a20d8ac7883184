package canopy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object of an application session. It owns the
// registry, the root node, the dispatcher, free animators and input state.
type Scene struct {
	root       *Node
	registry   *Registry
	dispatcher *Dispatcher
	renderer   Renderer
	config     Config
	debug      bool
	closed     bool

	// Background fills the screen before drawing when its alpha is non-zero.
	Background Color

	// Free animators not attached to a node through Animate or Queue.
	animators []*Animator

	// Input polling buffers, reused every frame.
	keyBuf     []ebiten.Key
	charBuf    []rune
	touchBuf   []ebiten.TouchID
	gamepadBuf []ebiten.GamepadID
	buttonBuf  []ebiten.StandardGamepadButton
	cursorX    int
	cursorY    int

	injectQueue []syntheticEvent
	testRunner  *TestRunner
}

// NewScene creates a scene with DefaultConfig.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultConfig())
}

// NewSceneWithConfig creates a scene whose root node is registered as "root"
// and sized to the configured window.
func NewSceneWithConfig(cfg Config) *Scene {
	reg := NewRegistry()
	// A fresh registry cannot already hold "root".
	root, _ := reg.NewNode("root")
	root.SetRect(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	// The root only hosts children; empty space is not a hit.
	root.HitTest = HitTestDisabled

	d := NewDispatcher(root)
	d.SetDragDeadZone(cfg.DragDeadZone)
	d.SetTabFocus(cfg.TabFocus)

	s := &Scene{
		root:       root,
		registry:   reg,
		dispatcher: d,
		renderer:   NewDebugRenderer(),
		config:     cfg,
	}
	s.SetDebugMode(cfg.Debug)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node { return s.root }

// Registry returns the scene's registry.
func (s *Scene) Registry() *Registry { return s.registry }

// Dispatcher returns the scene's dispatcher. Events can be fed to it
// directly when input polling is disabled.
func (s *Scene) Dispatcher() *Dispatcher { return s.dispatcher }

// Config returns the configuration the scene was created with.
func (s *Scene) Config() Config { return s.config }

// NewNode creates a node registered in the scene's registry. It is not yet
// attached to the tree.
func (s *Scene) NewNode(name string) (*Node, error) {
	return s.registry.NewNode(name)
}

// Create builds a node through a registered type factory.
func (s *Scene) Create(tag, name string) (*Node, error) {
	return s.registry.Create(tag, name)
}

// Lookup returns the registered node with the given name.
func (s *Scene) Lookup(name string) (*Node, error) {
	return s.registry.Lookup(name)
}

// Resize sets the root size, relaying out anchored children.
func (s *Scene) Resize(w, h float64) {
	s.root.SetSize(w, h)
}

// SetRenderer sets the renderer used by Draw. Nil draws only OnDraw hooks.
func (s *Scene) SetRenderer(r Renderer) { s.renderer = r }

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.dispatcher.SetEntityStore(store)
}

// OnEvent registers an observer for routed events of type t.
func (s *Scene) OnEvent(t EventType, fn func(n *Node, ev InteractionEvent)) CallbackHandle {
	return s.dispatcher.OnEvent(t, fn)
}

// AddAnimator adds a free animator updated by the scene each frame after the
// tree. It is removed once its target becomes invalid, or when it finishes
// with Reset set.
func (s *Scene) AddAnimator(a *Animator) {
	if a != nil {
		s.animators = append(s.animators, a)
	}
}

// Animators returns the scene's free animators. The returned slice MUST NOT
// be mutated.
func (s *Scene) Animators() []*Animator { return s.animators }

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-frame timing is logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Update advances the scene by dt seconds: test script and input first,
// then the node tree (hooks, behaviors, animators), then free animators.
func (s *Scene) Update(dt float64) {
	if s.closed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && s.config.PollInput {
		s.pollInput()
	}

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.root.Update(dt)

	if s.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.updateAnimators(dt)

	if s.debug {
		stats.animTime = time.Since(t0)
		stats.nodeCount, stats.animatorCnt = countTree(s.root)
		stats.animatorCnt += len(s.animators)
		s.debugLog(stats)
	}
}

func (s *Scene) updateAnimators(dt float64) {
	if len(s.animators) == 0 {
		return
	}
	kept := s.animators[:0]
	for _, a := range s.animators {
		if err := a.Update(dt); err != nil {
			Logger().Warn("canopy: dropping animator", "animator", a.name, "error", err)
			continue
		}
		if a.IsFinished() && a.Reset {
			continue
		}
		kept = append(kept, a)
	}
	clear(s.animators[len(kept):])
	s.animators = kept
}

// Draw fills the background and draws the tree with the scene's renderer.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	if s.Background.A > 0 {
		screen.Fill(s.Background.toRGBA())
	}
	s.root.Draw(screen, s.renderer)
}

// Close disposes every node of the session and drops free animators.
// The scene must not be used afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.registry.Close()
	clear(s.animators)
	s.animators = nil
	s.injectQueue = nil
	s.testRunner = nil
	s.closed = true
}
