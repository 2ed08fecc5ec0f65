// Package dispatch maps incoming command lines to the command table of
// the device.
package dispatch

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"i4.energy/across/smscmd/cmdparse"
)

// Result describes what happened to one command line.
type Result struct {
	// Command is the name of the matching command, empty when none matched.
	Command string
	Outcome cmdparse.Outcome
	// Detail is the description returned by the command on Ok.
	Detail string
	// Tokens holds the data blocks the command read.
	Tokens []string
}

// String renders the result as a short reply suitable for an SMS.
func (r Result) String() string {
	switch {
	case r.Command == "":
		return "ERR unknown command"
	case r.Outcome != cmdparse.Ok:
		return "ERR " + r.Command + ": " + r.Outcome.String()
	case r.Detail != "":
		return "OK " + r.Detail
	default:
		return "OK " + r.Command
	}
}

// Dispatcher runs a command line against a table of commands. It is
// safe for concurrent use; each Handle call parses with its own
// tokenizer.
type Dispatcher struct {
	logger *slog.Logger

	mu       sync.RWMutex
	commands []Command
}

// New returns a Dispatcher with the given commands registered.
func New(logger *slog.Logger, commands ...Command) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{logger: logger}
	d.Register(commands...)
	return d
}

// Register adds commands to the table. Longer names are tried first so
// that "tmin" never claims a line meant for "tmin2".
func (d *Dispatcher) Register(commands ...Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// Handle iterates the old slice without the lock, so never sort in place.
	table := slices.Concat(d.commands, commands)
	slices.SortStableFunc(table, func(a, b Command) int {
		return cmp.Compare(len(b.Name), len(a.Name))
	})
	d.commands = table
}

// Commands returns the registered names in matching order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.commands))
	for i, c := range d.commands {
		names[i] = c.Name
	}
	return names
}

// Handle applies the first command found in line. A line carries one
// command; the remaining commands are not tried once one matched, even
// if it failed.
func (d *Dispatcher) Handle(line string) Result {
	d.mu.RLock()
	commands := d.commands
	d.mu.RUnlock()

	tok := cmdparse.New(line)
	for _, c := range commands {
		outcome, detail := c.Apply(tok)
		if outcome == cmdparse.CommandNotFound {
			continue
		}

		res := Result{
			Command: c.Name,
			Outcome: outcome,
			Detail:  detail,
			Tokens:  tok.Tokens(),
		}
		if outcome == cmdparse.Ok {
			d.logger.Info("Command applied", "command", c.Name, "detail", detail)
		} else {
			d.logger.Warn("Command rejected", "command", c.Name, "outcome", outcome.String(), "found", tok.Found())
		}
		return res
	}

	d.logger.Debug("No command in line", "line", line)
	return Result{Outcome: cmdparse.CommandNotFound}
}
