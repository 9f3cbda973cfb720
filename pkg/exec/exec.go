// Package exec runs external commands on behalf of the delegator.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

var ErrStart = errors.New("start command")

// CmdError is returned when a command could not be run to completion.
type CmdError struct {
	Cause  error
	Args   string
	Stderr string
}

func (ce *CmdError) Error() string {
	res := fmt.Sprintf("`%v` failed: %v", ce.Args, ce.Cause)
	if ce.Stderr != "" {
		res = fmt.Sprintf("%s: %s", res, ce.Stderr)
	}

	return res
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

// ExitError is returned when a command ran and exited with a non-zero status.
// It carries the status so it can become the status of this process.
type ExitError struct {
	Err  error
	Args string
	Code int
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("`%s` exited with status %d", e.Args, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func (e *ExitError) ExitCode() int {
	return e.Code
}

// Cmd describes a command to run.
type Cmd struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Name   string
	Dir    string
	Args   []string
	// Env is added to the current process environment.
	Env []string
}

func (c Cmd) command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Stdin = c.Stdin

	return cmd
}

func (c Cmd) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Run runs c with its standard streams attached and waits for it to exit.
// Interrupts received while the command runs are forwarded to it as decided
// by [Forwards]. A non-zero exit is reported as an [*ExitError].
func Run(ctx context.Context, c Cmd) error {
	logCtx := slog.With("execID", uuid.NewString())

	cmd := c.command(ctx)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	// log in a way we can copy-and-paste into a terminal
	logCtx.Debug(c.String(), "dir", cmd.Dir)

	start := time.Now()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return &CmdError{Args: c.String(), Cause: fmt.Errorf("%w: %w", ErrStart, err)}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-sigs:
			if !Forwards(sig, c.Stdin) {
				logCtx.Debug("signal not forwarded", "signal", sig.String())

				continue
			}

			logCtx.Debug("forwarding signal", "signal", sig.String())
			_ = cmd.Process.Signal(sig)
		case err := <-done:
			logCtx.Debug("command finished", "duration", time.Since(start))

			return exitErr(c, err)
		}
	}
}

// Forwards reports whether sig, received while a child reading stdin runs,
// must be passed on to the child. An interrupt typed at a terminal already
// reaches the child through the foreground process group, so SIGINT is only
// forwarded when stdin is not a terminal.
func Forwards(sig os.Signal, stdin io.Reader) bool {
	switch sig {
	case syscall.SIGTERM:
		return true
	case os.Interrupt:
		return !isTerminal(stdin)
	}

	return false
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Output runs c and returns its standard output. Standard error is captured
// into the returned error on failure.
func Output(ctx context.Context, c Cmd) ([]byte, error) {
	logCtx := slog.With("execID", uuid.NewString())

	var stdout, stderr bytes.Buffer

	cmd := c.command(ctx)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logCtx.Debug(c.String(), "dir", cmd.Dir)

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, &CmdError{
				Args:   c.String(),
				Cause:  exitErr(c, err),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}

		return nil, &CmdError{Args: c.String(), Cause: fmt.Errorf("%w: %w", ErrStart, err)}
	}

	return stdout.Bytes(), nil
}

func exitErr(c Cmd, err error) error {
	if err == nil {
		return nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := ee.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 1
		}

		return &ExitError{Args: c.String(), Code: code}
	}

	return &CmdError{Args: c.String(), Cause: err}
}
