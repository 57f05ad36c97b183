// Package susops runs the external susops CLI and captures its results.
package susops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ExitSpawnFailed is reported when the CLI could not be started at all.
const ExitSpawnFailed = -1

// BinaryName is the name of the external CLI.
const BinaryName = "susops"

// EnvBinary overrides binary discovery.
const EnvBinary = "SUSOPS_BIN"

// Result is the captured outcome of one CLI invocation.
type Result struct {
	Output   string // trimmed stdout, invalid UTF-8 replaced
	Stderr   string
	ExitCode int
}

// OK reports whether the CLI exited with code 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Empty reports whether the CLI printed nothing on stdout.
func (r Result) Empty() bool {
	return r.Output == ""
}

// Message returns the text to show the user: stdout, or stderr when stdout is empty.
func (r Result) Message() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Stderr
}

// Alerter shows a blocking error message to the user.
type Alerter interface {
	Alert(title, message string)
}

// Runner invokes the susops CLI.
type Runner interface {
	Run(ctx context.Context, args []string, opts ...RunOption) Result
}

type runConfig struct {
	suppressAlert bool
}

// RunOption tweaks a single invocation.
type RunOption func(*runConfig)

// WithSuppressAlert skips the error alert on a non-zero exit.
func WithSuppressAlert() RunOption {
	return func(c *runConfig) { c.suppressAlert = true }
}

// ExecRunner runs the CLI as a subprocess. It never returns an error:
// failures are folded into the Result.
type ExecRunner struct {
	bin     string
	alerter Alerter
	log     zerolog.Logger
}

// NewExecRunner creates a runner for the binary at bin. alerter may be nil.
func NewExecRunner(bin string, alerter Alerter, logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{
		bin:     bin,
		alerter: alerter,
		log:     logger.With().Str("module", "runner").Logger(),
	}
}

// Binary returns the path of the CLI this runner invokes.
func (r *ExecRunner) Binary() string {
	return r.bin
}

// Run executes `susops args...` and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, args []string, opts ...RunOption) Result {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	res := r.exec(ctx, args)

	r.log.Debug().
		Strs("args", args).
		Int("exit_code", res.ExitCode).
		Dur("took", time.Since(start)).
		Msg("susops finished")

	if res.ExitCode != 0 && !cfg.suppressAlert && r.alerter != nil {
		r.alerter.Alert("Error", res.Message())
	}
	return res
}

func (r *ExecRunner) exec(ctx context.Context, args []string) Result {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Output: clean(stdout.Bytes()),
		Stderr: clean(stderr.Bytes()),
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	r.log.Warn().Err(err).Str("bin", r.bin).Msg("failed to run susops")
	res.ExitCode = ExitSpawnFailed
	res.Output = fmt.Sprintf("Error running %s: %v", BinaryName, err)
	return res
}

func clean(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}

// FindBinary locates the susops CLI. Check order: explicit override,
// $SUSOPS_BIN, bin/susops next to the executable (app bundle layout),
// ../Resources/bin/susops (macOS bundle), then $PATH.
func FindBinary(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(EnvBinary); env != "" {
		return env, nil
	}

	if execPath, err := os.Executable(); err == nil {
		dir := filepath.Dir(execPath)
		for _, candidate := range []string{
			filepath.Join(dir, "bin", BinaryName),
			filepath.Join(dir, "..", "Resources", "bin", BinaryName),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	path, err := exec.LookPath(BinaryName)
	if err != nil {
		return "", fmt.Errorf("%s not found. Install the susops CLI or pass --susops: %w", BinaryName, err)
	}
	return path, nil
}
