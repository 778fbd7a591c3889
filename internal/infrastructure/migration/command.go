package migration

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Runner is the subset of Migrator the CLI commands drive
type Runner interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
}

// ErrUsage is returned for an unknown command or malformed arguments
var ErrUsage = errors.New("invalid usage")

// NeedsDatabase reports whether command talks to the database
func NeedsDatabase(command string) bool {
	switch command {
	case "create", "list":
		return false
	default:
		return true
	}
}

// Run executes one of up, down, steps N, version or force V against r
func Run(r Runner, command string, args []string, out io.Writer) error {
	switch command {
	case "up":
		return r.Up()
	case "down":
		return r.Down()
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: steps must be non-zero", ErrUsage)
		}
		return r.Steps(n)
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return r.Force(v)
	case "version":
		version, dirty, err := r.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			_, err = fmt.Fprintln(out, "No migrations applied")
			return err
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		_, err = fmt.Fprintf(out, "Version %d (%s)\n", version, state)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: a number is required", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUsage, args[0])
	}
	return n, nil
}
