package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type testShell struct {
	*Shell
	out, err *bytes.Buffer
	runner   *MockRunner
	clock    *clockwork.FakeClock
}

func newTestShell(t *testing.T, input string, o Options) *testShell {
	ctrl := gomock.NewController(t)
	ts := &testShell{
		out:    new(bytes.Buffer),
		err:    new(bytes.Buffer),
		runner: NewMockRunner(ctrl),
		clock:  clockwork.NewFakeClockAt(time.Date(2014, 5, 10, 12, 0, 0, 0, time.UTC)),
	}

	o.In = strings.NewReader(input)
	o.Out = ts.out
	o.Err = ts.err
	o.Runner = ts.runner
	o.Clock = ts.clock
	if o.Logger == nil {
		o.Logger = zaptest.NewLogger(t)
	}

	ts.Shell = New(o)
	t.Cleanup(ts.Close)
	return ts
}

func historyIDs(c []*Command) []int {
	var ids []int
	for _, ci := range c {
		ids = append(ids, ci.ID)
	}

	return ids
}

func TestExecuteExternal(t *testing.T) {
	s := newTestShell(t, "", Options{})
	ctx := context.Background()

	s.runner.EXPECT().Run(gomock.Any(), []string{"echo", "hello world"}).Return(nil)
	quit, err := s.Execute(ctx, `echo "hello world"`)
	require.NoError(t, err)
	require.False(t, quit)

	failed := errors.New("exit status 1")
	s.runner.EXPECT().Run(gomock.Any(), []string{"false"}).Return(failed)
	_, err = s.Execute(ctx, "false")
	require.ErrorIs(t, err, failed)

	require.Equal(t, []int{1, 2}, historyIDs(s.History(10)))
}

func TestExecuteBlankAndInvalid(t *testing.T) {
	s := newTestShell(t, "", Options{})
	ctx := context.Background()

	quit, err := s.Execute(ctx, "   ")
	require.NoError(t, err)
	require.False(t, quit)

	_, err = s.Execute(ctx, `echo "foo`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)
	require.Empty(t, s.History(10))

	_, err = s.Execute(ctx, "help")
	require.NoError(t, err)
	require.Equal(t, []int{1}, historyIDs(s.History(10)))
}

func TestExecuteEmptyCommand(t *testing.T) {
	s := newTestShell(t, "", Options{})

	_, err := s.Execute(context.Background(), `""`)
	require.ErrorIs(t, err, ErrUsage)

	_, err = s.Execute(context.Background(), `"" foo`)
	require.ErrorIs(t, err, ErrUsage)
	require.Empty(t, s.History(10))
}

func TestHelp(t *testing.T) {
	s := newTestShell(t, "", Options{})
	_, err := s.Execute(context.Background(), "help")
	require.NoError(t, err)

	for _, name := range []string{"verbose", "help", "history", "quit"} {
		require.Contains(t, s.out.String(), "\t"+name)
	}
}

func TestVerbose(t *testing.T) {
	s := newTestShell(t, "", Options{})
	ctx := context.Background()
	require.False(t, s.Verbose())

	_, err := s.Execute(ctx, "verbose off")
	require.NoError(t, err)
	require.Contains(t, s.out.String(), "you are not in verbose mode.")

	_, err = s.Execute(ctx, "verbose on")
	require.NoError(t, err)
	require.True(t, s.Verbose())
	require.Contains(t, s.out.String(), "you are in verbose mode.")

	_, err = s.Execute(ctx, "verbose off")
	require.NoError(t, err)
	require.False(t, s.Verbose())
	require.Contains(t, s.out.String(), "you left verbose mode.")

	_, err = s.Execute(ctx, "verbose")
	require.ErrorIs(t, err, ErrUsage)

	_, err = s.Execute(ctx, "verbose maybe")
	require.ErrorIs(t, err, ErrUsage)
}

func TestVerboseLogging(t *testing.T) {
	var logs bytes.Buffer
	o := Options{
		In:     strings.NewReader(""),
		Out:    new(bytes.Buffer),
		Err:    &logs,
		Runner: NewMockRunner(gomock.NewController(t)),
	}

	s := New(o)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Execute(ctx, "help")
	require.NoError(t, err)
	require.Empty(t, logs.String())

	_, err = s.Execute(ctx, "verbose on")
	require.NoError(t, err)
	_, err = s.Execute(ctx, "help")
	require.NoError(t, err)
	require.Contains(t, logs.String(), "command")
	require.Contains(t, logs.String(), "session")
}

func TestVerboseCustomLogger(t *testing.T) {
	t.Run("debug logger", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		s := newTestShell(t, "", Options{Logger: zap.New(core)})
		ctx := context.Background()

		_, err := s.Execute(ctx, "help")
		require.NoError(t, err)
		require.Zero(t, logs.FilterMessage("command").Len())

		_, err = s.Execute(ctx, "verbose on")
		require.NoError(t, err)
		_, err = s.Execute(ctx, "help")
		require.NoError(t, err)
		require.Equal(t, 1, logs.FilterMessage("command").Len())

		// logged before leaving verbose mode
		_, err = s.Execute(ctx, "verbose off")
		require.NoError(t, err)
		require.Equal(t, 2, logs.FilterMessage("command").Len())

		_, err = s.Execute(ctx, "help")
		require.NoError(t, err)
		require.Equal(t, 2, logs.FilterMessage("command").Len())
	})

	t.Run("info logger in verbose mode", func(t *testing.T) {
		core, _ := observer.New(zapcore.InfoLevel)
		s := newTestShell(t, "", Options{Logger: zap.New(core), Verbose: true})
		ctx := context.Background()

		require.True(t, s.log.Core().Enabled(zapcore.InfoLevel))
		require.False(t, s.log.Core().Enabled(zapcore.DebugLevel))

		_, err := s.Execute(ctx, "verbose off")
		require.NoError(t, err)
		require.False(t, s.log.Core().Enabled(zapcore.InfoLevel))
		require.True(t, s.log.Core().Enabled(zapcore.WarnLevel))
	})
}

func TestHistory(t *testing.T) {
	s := newTestShell(t, "", Options{})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		s.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)
		_, err := s.Execute(ctx, "true")
		require.NoError(t, err)
		s.clock.Advance(time.Second)
	}

	_, err := s.Execute(ctx, "history")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(s.out.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "    4  12:00:03  true", lines[0])
	require.Equal(t, "   13  12:00:12  history", lines[9])

	s.out.Reset()
	_, err = s.Execute(ctx, "history 2")
	require.NoError(t, err)
	require.Equal(t, "   13  12:00:12  history\n   14  12:00:12  history 2\n", s.out.String())

	_, err = s.Execute(ctx, "history -1")
	require.ErrorIs(t, err, ErrUsage)
	_, err = s.Execute(ctx, "history 1 2")
	require.ErrorIs(t, err, ErrUsage)

	require.Equal(t, []int{15, 16}, historyIDs(s.History(2)))
	require.Len(t, s.History(100), 16)
}

func TestHistorySize(t *testing.T) {
	s := newTestShell(t, "", Options{HistorySize: 3})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Execute(ctx, "help")
		require.NoError(t, err)
	}

	require.Equal(t, []int{3, 4, 5}, historyIDs(s.History(10)))
}

func TestRun(t *testing.T) {
	input := strings.Join([]string{
		"",
		`echo "hello world"`,
		`echo "broken`,
		"history",
		"quit",
		"never",
	}, "\n")

	s := newTestShell(t, input, Options{})
	s.runner.EXPECT().Run(gomock.Any(), []string{"echo", "hello world"}).Return(nil)

	require.NoError(t, s.Run(context.Background()))
	require.True(t, strings.HasPrefix(s.out.String(), "mish[1]> mish[1]> mish[2]> mish[2]> "))
	require.Contains(t, s.out.String(), "    1  12:00:00  echo hello world\n    2  12:00:00  history\nmish[3]> ")
	require.Contains(t, s.err.String(), "mish: unterminated quote")
	require.Equal(t, []int{1, 2, 3}, historyIDs(s.History(10)))
}

func TestRunEOF(t *testing.T) {
	s := newTestShell(t, "help\n", Options{})
	require.NoError(t, s.Run(context.Background()))
	require.True(t, strings.HasSuffix(s.out.String(), "mish[2]> \n"))
}

func TestRunCanceled(t *testing.T) {
	s := newTestShell(t, "help\nhelp\n", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Run(ctx), context.Canceled)
	require.Len(t, s.History(10), 1)
}
