// Package engine owns named commands and resolves input lines to
// handlers. Dispatch tokenizes the line and tries every registered
// command in registration order; the first matching pattern wins and
// its handler's tagged result is returned. Built-in help and exit
// commands are pre-registered on every engine.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/argtype"
	"github.com/emberforge/parley/core/pattern"
	"github.com/emberforge/parley/core/stats"
	"github.com/emberforge/parley/core/token"
)

// Handler executes a matched command with its bound arguments.
type Handler func(ctx context.Context, args pattern.Bindings) Result

// Command is a named command with an ordered pattern list. Patterns
// are tried in declaration order, so authors control disambiguation
// by putting specific patterns before general ones.
type Command struct {
	Name     string
	Help     string
	Patterns []*pattern.Pattern
	Handler  Handler
}

// NewCommand parses the pattern definitions against the given type
// registry and builds a command.
func NewCommand(types *argtype.Registry, name, help string, handler Handler, defs ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("command %q needs a handler", name)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("command %q needs at least one pattern", name)
	}

	patterns := make([]*pattern.Pattern, 0, len(defs))
	for _, def := range defs {
		p, err := pattern.Parse(def, types)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		patterns = append(patterns, p)
	}

	return &Command{Name: name, Help: help, Patterns: patterns, Handler: handler}, nil
}

// Options configure an engine beyond its defaults.
type Options struct {
	// Types is the argument type registry. Defaults to the builtin
	// set; a custom registry must still provide str, which the
	// built-in commands use.
	Types *argtype.Registry

	// Logger receives coverage warnings and dispatch debug logs.
	// The zero value discards everything.
	Logger zerolog.Logger

	// Stats, when set, records dispatch counters and durations.
	Stats *stats.Collector

	// DisableCoverageCheck turns off the registration-time shadow
	// lint.
	DisableCoverageCheck bool
}

// Engine dispatches input lines across registered commands.
// Registration takes an exclusive lock so engines can be assembled
// from multiple goroutines; dispatch reads under a shared lock.
type Engine struct {
	mu       sync.RWMutex
	commands []*Command
	index    map[string]*Command

	types         *argtype.Registry
	logger        zerolog.Logger
	collector     *stats.Collector
	checkCoverage bool
}

// New creates an engine with the built-in help and exit commands
// registered.
func New(opts Options) *Engine {
	if opts.Types == nil {
		opts.Types = argtype.Builtin()
	}

	e := &Engine{
		index:         make(map[string]*Command),
		types:         opts.Types,
		logger:        opts.Logger,
		collector:     opts.Stats,
		checkCoverage: !opts.DisableCoverageCheck,
	}
	e.registerBuiltins()

	return e
}

// Types returns the engine's argument type registry.
func (e *Engine) Types() *argtype.Registry {
	return e.types
}

// Register adds a fully built command.
// Returns an error if the command name is already taken.
func (e *Engine) Register(cmd *Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.index[cmd.Name]; exists {
		return fmt.Errorf("command %q already registered", cmd.Name)
	}

	if e.checkCoverage {
		e.warnShadows(cmd)
	}

	e.commands = append(e.commands, cmd)
	e.index[cmd.Name] = cmd

	return nil
}

// Add parses the pattern definitions and registers the command in
// one step.
func (e *Engine) Add(name, help string, handler Handler, defs ...string) error {
	cmd, err := NewCommand(e.types, name, help, handler, defs...)
	if err != nil {
		return err
	}
	return e.Register(cmd)
}

// Lookup returns a registered command by name.
func (e *Engine) Lookup(name string) (*Command, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cmd, ok := e.index[name]
	return cmd, ok
}

// Names returns the registered command names in sorted order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.index))
	for name := range e.index {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SetHelp replaces the help text of a registered command, so an
// application can re-document the built-ins for its own context.
func (e *Engine) SetHelp(name, help string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, ok := e.index[name]
	if !ok {
		return fmt.Errorf("command %q not registered", name)
	}
	cmd.Help = help

	return nil
}

// Dispatch resolves a line to the first matching pattern across all
// registered commands and invokes its handler. When nothing matches
// it returns an unknown_command result carrying the original text
// and its first token; a failed match is an ordinary value, never an
// error.
func (e *Engine) Dispatch(ctx context.Context, line string) Result {
	start := time.Now()
	tokens := token.Split(line)

	e.mu.RLock()
	commands := make([]*Command, len(e.commands))
	copy(commands, e.commands)
	e.mu.RUnlock()

	for _, cmd := range commands {
		for _, p := range cmd.Patterns {
			args, ok := p.Match(tokens)
			if !ok {
				continue
			}

			e.logger.Debug().
				Str("command", cmd.Name).
				Str("pattern", p.String()).
				Msg("dispatching")

			res := cmd.Handler(ctx, args)
			if e.collector != nil {
				e.collector.ObserveDispatch(cmd.Name, time.Since(start))
			}
			return res
		}
	}

	first := ""
	if len(tokens) > 0 {
		first = tokens[0]
	}

	e.logger.Debug().Str("line", line).Msg("no command matched")
	if e.collector != nil {
		e.collector.ObserveUnknown(time.Since(start))
	}

	return Result{"type": TagUnknownCommand, "text": line, "command": first}
}

// warnShadows logs every unreachable pattern in the command.
// Advisory only; registration proceeds regardless.
func (e *Engine) warnShadows(cmd *Command) {
	for _, s := range pattern.FindShadows(cmd.Patterns) {
		e.logger.Warn().
			Str("command", cmd.Name).
			Str("pattern", cmd.Patterns[s.Covered].String()).
			Str("covered_by", cmd.Patterns[s.Covering].String()).
			Msg("pattern can never match")
	}
}
