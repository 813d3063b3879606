// Package shell implements mish, a small interactive shell. It executes a few internal commands, starts the
// other commands as processes, and keeps the history of the executed commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

// ErrUsage is returned when an internal command is called with invalid arguments.
var ErrUsage = errors.New("invalid usage")

const (
	quietLevel   = zapcore.WarnLevel
	verboseLevel = zapcore.DebugLevel
)

// Options configure a shell. The zero value is usable, reading stdin and writing stdout and stderr.
type Options struct {

	// In is the input of the shell, and of the started processes.
	In io.Reader

	// Out receives the prompt and the output of the commands.
	Out io.Writer

	// Err receives the error messages and the log entries.
	Err io.Writer

	// Runner executes the non-internal commands. Defaults to starting processes.
	Runner Runner

	// Clock provides the timestamps of the history entries.
	Clock clockwork.Clock

	// Logger, when set, is used instead of the console logger writing to Err. Its entries are filtered by
	// the verbose mode of the shell, on top of the logger's own level: an entry disabled by the logger is not
	// written even in verbose mode.
	Logger *zap.Logger

	// Verbose starts the shell in verbose mode.
	Verbose bool

	// HistorySize limits the number of kept history entries. Zero means no limit.
	HistorySize int
}

type builtin func(s *Shell, args []string) (quit bool, err error)

var builtins = map[string]builtin{
	"help":    help,
	"verbose": verbose,
	"history": printHistory,
	"quit":    quit,
}

// levelFilter drops the entries below a level that can change at runtime. Unlike zap.IncreaseLevel, it
// accepts a level lower than the one of the wrapped core.
type levelFilter struct {
	zapcore.Core
	level zapcore.LevelEnabler
}

func (f levelFilter) Enabled(l zapcore.Level) bool {
	return f.level.Enabled(l) && f.Core.Enabled(l)
}

func (f levelFilter) With(fields []zapcore.Field) zapcore.Core {
	return levelFilter{Core: f.Core.With(fields), level: f.level}
}

func (f levelFilter) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !f.level.Enabled(e.Level) {
		return ce
	}

	return f.Core.Check(e, ce)
}

// Shell reads command lines, and executes them one by one.
type Shell struct {
	in       io.Reader
	out, err io.Writer
	runner   Runner
	clock    clockwork.Clock
	level    zap.AtomicLevel
	log      *zap.Logger
	history  *history
	next     int
}

// New creates a shell.
func New(o Options) *Shell {
	if o.In == nil {
		o.In = os.Stdin
	}

	if o.Out == nil {
		o.Out = os.Stdout
	}

	if o.Err == nil {
		o.Err = os.Stderr
	}

	if o.Runner == nil {
		o.Runner = ExecRunner(o.In, o.Out, o.Err)
	}

	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}

	level := zap.NewAtomicLevelAt(quietLevel)
	if o.Verbose {
		level.SetLevel(verboseLevel)
	}

	log := o.Logger
	if log == nil {
		log = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(o.Err),
			level,
		))
	} else {
		log = log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return levelFilter{Core: c, level: level}
		}))
	}

	log = log.Named("mish").With(zap.String("session", uuid.NewString()))
	return &Shell{
		in:      o.In,
		out:     o.Out,
		err:     o.Err,
		runner:  o.Runner,
		clock:   o.Clock,
		level:   level,
		log:     log,
		history: newHistory(o.HistorySize, log.Named("history")),
		next:    1,
	}
}

// Verbose tells whether the shell is in verbose mode.
func (s *Shell) Verbose() bool {
	return s.level.Enabled(verboseLevel)
}

// History returns the last n entries of the history, oldest first.
func (s *Shell) History(n int) []*Command {
	return s.history.last(n)
}

func (s *Shell) prompt() {
	fmt.Fprintf(s.out, "mish[%d]> ", s.next)
}

// Execute executes a single command line. Blank lines are ignored, and don't count as commands. It returns
// true when the shell should quit.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	args, err := Tokenize(line)
	if err != nil {
		return false, err
	}

	if len(args) == 0 {
		return false, nil
	}

	if args[0] == "" {
		return false, xerrors.Errorf("empty command: %w", ErrUsage)
	}

	c := &Command{ID: s.next, Time: s.clock.Now(), Args: args}
	s.next++
	if err := s.history.add(c); err != nil {
		return false, xerrors.Errorf("history: %w", err)
	}

	s.log.Debug("command", zap.Int("id", c.ID), zap.Strings("args", args))

	if b, ok := builtins[args[0]]; ok {
		return b(s, args[1:])
	}

	err = s.runner.Run(ctx, args)
	s.log.Debug("command finished", zap.Int("id", c.ID), zap.Error(err))
	return false, err
}

// Run reads and executes the input line by line, until quit is called, the input ends, or the context is
// canceled. The errors of the individual commands are printed and don't stop the shell.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		s.prompt()
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.err, "mish: %v\n", err)
		}

		if quit {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Close releases the history.
func (s *Shell) Close() {
	s.history.destroy()
	_ = s.log.Sync()
}

func help(s *Shell, args []string) (bool, error) {
	fmt.Fprint(s.out, "Possible commands with mish!\n"+
		"\tverbose on|off - show the executed commands and the major operations\n"+
		"\thelp - list of all internal commands\n"+
		"\thistory [n] - list the n most recent commands, 10 by default\n"+
		"\tquit - terminate the application\n")

	return false, nil
}

func verbose(s *Shell, args []string) (bool, error) {
	if len(args) != 1 {
		return false, xerrors.Errorf("verbose on|off: %w", ErrUsage)
	}

	switch args[0] {
	case "on":
		s.level.SetLevel(verboseLevel)
		fmt.Fprintln(s.out, "you are in verbose mode.")
	case "off":
		if s.Verbose() {
			s.level.SetLevel(quietLevel)
			fmt.Fprintln(s.out, "you left verbose mode.")
		} else {
			fmt.Fprintln(s.out, "you are not in verbose mode.")
		}
	default:
		return false, xerrors.Errorf("verbose %s: %w", args[0], ErrUsage)
	}

	return false, nil
}

func printHistory(s *Shell, args []string) (bool, error) {
	n := defaultHistoryListing
	switch len(args) {
	case 0:
	case 1:
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return false, xerrors.Errorf("history %s: %w", args[0], ErrUsage)
		}
	default:
		return false, xerrors.Errorf("history [n]: %w", ErrUsage)
	}

	s.history.print(s.out, n)
	return false, nil
}

func quit(s *Shell, args []string) (bool, error) {
	s.log.Debug("quit")
	return true, nil
}
