package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Screen identifies one step of the kiosk flow. Applications define their
// own constants with iota.
type Screen int

// ScreenExit signals the router to stop.
const ScreenExit Screen = -1

// ScreenFunc runs a screen until it produces a result. Blocking screens
// should return when ctx is done.
type ScreenFunc func(ctx context.Context, input any) (result any, err error)

// TransitionFunc decides the next screen after from has returned result.
// Returning ScreenExit stops the router.
type TransitionFunc func(from Screen, result any, stack *Stack) (next Screen, input any)

// Router runs registered screens one after another. All routing decisions
// live in a single transition function.
type Router struct {
	screens    map[Screen]ScreenFunc
	names      map[Screen]string
	transition TransitionFunc
	stack      *Stack
	logger     *slog.Logger
}

// New creates an empty router.
func New() *Router {
	return &Router{
		screens: make(map[Screen]ScreenFunc),
		names:   make(map[Screen]string),
		stack:   NewStack(),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithLogger logs every screen change to logger.
func (r *Router) WithLogger(logger *slog.Logger) *Router {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Register adds a screen. name is used in logs and errors.
func (r *Router) Register(screen Screen, name string, fn ScreenFunc) *Router {
	r.screens[screen] = fn
	r.names[screen] = name
	return r
}

// OnTransition sets the transition function.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

func (r *Router) name(s Screen) string {
	if n, ok := r.names[s]; ok && n != "" {
		return n
	}
	return fmt.Sprintf("screen %d", s)
}

// Run starts at start and keeps going until the transition function returns
// ScreenExit, a screen fails or ctx is cancelled.
func (r *Router) Run(ctx context.Context, start Screen, input any) error {
	if r.transition == nil {
		return errors.New("router: no transition function set")
	}

	current := start
	currentInput := input

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("router: %w", err)
		}

		fn, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("router: %s not registered", r.name(current))
		}

		r.logger.Debug("entering screen", "screen", r.name(current), "stack", r.stack.Len())

		result, err := fn(ctx, currentInput)
		if err != nil {
			return fmt.Errorf("router: %s: %w", r.name(current), err)
		}

		next, nextInput := r.transition(current, result, r.stack)
		if next == ScreenExit {
			r.logger.Debug("router exiting", "from", r.name(current))
			return nil
		}

		current = next
		currentInput = nextInput
	}
}

// Stack returns the navigation stack shared with the transition function.
func (r *Router) Stack() *Stack {
	return r.stack
}
