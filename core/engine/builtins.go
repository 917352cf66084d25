package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberforge/parley/core/pattern"
)

// Help text for the built-in commands. Applications can replace it
// with SetHelp.
const (
	helpHelp = "List the available commands or show help for one command."
	exitHelp = "Exit the current session."
)

// registerBuiltins installs help and exit. The patterns are fixed, so
// registration only fails when the type registry lacks str.
func (e *Engine) registerBuiltins() {
	if err := e.Add("help", helpHelp, e.handleHelp, "help [command:str]"); err != nil {
		panic(err)
	}
	if err := e.Add("exit", exitHelp, e.handleExit, "exit", "quit"); err != nil {
		panic(err)
	}
}

func (e *Engine) handleHelp(ctx context.Context, args pattern.Bindings) Result {
	name, ok := args.String("command")
	if !ok {
		return Result{"type": TagHelp, "content": e.helpListing()}
	}

	cmd, found := e.Lookup(name)
	if !found {
		return Result{"type": TagHelp, "content": fmt.Sprintf("No such command %q", name)}
	}

	return Result{"type": TagHelp, "content": helpFor(cmd)}
}

func (e *Engine) handleExit(ctx context.Context, args pattern.Bindings) Result {
	return NewResult(TagExit)
}

// helpListing renders the sorted command list.
func (e *Engine) helpListing() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range e.Names() {
		b.WriteString("\n- ")
		b.WriteString(name)
	}
	b.WriteString("\n\nType 'help <command>' for details.")

	return b.String()
}

// helpFor renders one command's patterns and description.
func helpFor(cmd *Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Help for command %q:", cmd.Name)
	for _, p := range cmd.Patterns {
		fmt.Fprintf(&b, "\n- %s", p)
	}
	if cmd.Help != "" {
		b.WriteString("\n\n")
		b.WriteString(cmd.Help)
	}

	return b.String()
}
