package shell

//go:generate mockgen -destination runner_mock_test.go -package shell -write_package_comment=false github.com/aryszka/dllist/internal/shell Runner

import (
	"context"
	"io"
	"os/exec"

	"golang.org/x/xerrors"
)

// Runner executes the commands that are not internal to the shell.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

type execRunner struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

// ExecRunner returns a runner that starts the commands as processes, found in PATH, and waits for them.
func ExecRunner(stdin io.Reader, stdout, stderr io.Writer) Runner {
	return execRunner{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (r execRunner) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return xerrors.Errorf("%s: %w", args[0], err)
	}

	return nil
}
