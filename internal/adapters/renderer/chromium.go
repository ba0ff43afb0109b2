package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"inkframe/internal/adapters/file"
	"inkframe/internal/core/domain"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// chromiumExecutables is the fallback order: desktop browsers first,
// the headless-only shell last.
var chromiumExecutables = []string{
	"chromium-browser",
	"chromium",
	"google-chrome",
	"google-chrome-stable",
	"chromium-headless-shell",
}

// swiftshaderArchs lists the GOARCH values where the software GL
// backend is viable; everything else renders through EGL.
var swiftshaderArchs = map[string]bool{
	"amd64": true,
	"386":   true,
}

// sigillExitCode is 128+SIGILL, the shell convention chromium builds
// follow when the binary does not match the host ISA.
const sigillExitCode = 132

type runResult struct {
	exitCode int
	stderr   []byte
}

type attemptStatus int

const (
	attemptSuccess attemptStatus = iota
	attemptSkip
	attemptFailed
)

type attempt struct {
	status attemptStatus
	errMsg string
}

// Chromium renders web content to a bitmap by spawning one of the known
// chromium binaries per capture. lookPath and run are injectable for
// tests.
type Chromium struct {
	executables []string
	lookPath    func(name string) (string, error)
	run         func(ctx context.Context, name string, args []string) (runResult, error)
}

func NewChromium() *Chromium {
	return &Chromium{
		executables: chromiumExecutables,
		lookPath:    exec.LookPath,
		run:         runCommand,
	}
}

// Screenshot renders a target (URL or local path) at the given size. It
// tries each known chromium binary in order until one produces a
// capture; every failure is logged and a nil image is returned instead
// of an error. A zero timeout means no limit per attempt.
func (c *Chromium) Screenshot(ctx context.Context, target string, size domain.Dimensions,
	timeout time.Duration) image.Image {
	outPath, err := file.SaveTempFile(nil, ".png")
	if err != nil {
		log.Error().Err(err).Msg("failed to take screenshot")
		return nil
	}
	defer file.RemoveTempFile(outPath)

	normalized := normalizeTarget(target)

	var errs []string
	captured := false
	for _, executable := range c.executables {
		if _, err := c.lookPath(executable); err != nil {
			continue
		}

		result := c.tryExecutable(ctx, executable, normalized, outPath, size, timeout)
		if result.status == attemptSuccess {
			captured = true
			break
		}
		if result.status == attemptFailed {
			errs = append(errs, result.errMsg)
			log.Error().Str("executable", executable).Msg(result.errMsg)
		}
	}

	if !captured {
		if len(errs) == 0 {
			log.Error().Msg("failed to take screenshot: no chromium executable found")
		} else {
			log.Error().Strs("errors", errs).Msg("failed to take screenshot")
		}
		return nil
	}

	capture, err := file.GetTempFile(outPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to take screenshot")
		return nil
	}

	img, err := imaging.Decode(bytes.NewReader(capture))
	if err != nil {
		log.Error().Err(err).Msg("failed to decode screenshot")
		return nil
	}

	return img
}

// ScreenshotHTML writes the markup to a temp file and renders it like
// any other local target. The temp file is removed on all paths.
func (c *Chromium) ScreenshotHTML(ctx context.Context, html string, size domain.Dimensions,
	timeout time.Duration) image.Image {
	path, err := file.SaveTempFile([]byte(html), ".html")
	if err != nil {
		log.Error().Err(err).Msg("failed to take screenshot")
		return nil
	}
	defer file.RemoveTempFile(path)

	return c.Screenshot(ctx, path, size, timeout)
}

func (c *Chromium) tryExecutable(ctx context.Context, executable, target, outPath string,
	size domain.Dimensions, timeout time.Duration) attempt {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := c.run(ctx, executable, buildArgs(executable, target, outPath, size))
	if errors.Is(err, context.DeadlineExceeded) {
		return attempt{status: attemptFailed,
			errMsg: fmt.Sprintf("%s timed out after %s", executable, timeout)}
	}
	if err != nil {
		return attempt{status: attemptFailed,
			errMsg: fmt.Sprintf("%s failed: %s", executable, err)}
	}

	if result.exitCode == 0 {
		if _, err := os.Stat(outPath); err == nil {
			return attempt{status: attemptSuccess}
		}
	}

	// SIGILL means the binary does not run on this CPU at all; expected
	// for some packagings, not worth surfacing.
	if result.exitCode == sigillExitCode {
		return attempt{status: attemptSkip}
	}

	return attempt{status: attemptFailed,
		errMsg: fmt.Sprintf("%s exited with code %d: %s", executable, result.exitCode,
			strings.TrimSpace(string(result.stderr)))}
}

// buildArgs assembles the chromium invocation. The headless shell parses
// the target as a positional argument before the flags; every other
// binary takes it after them.
func buildArgs(executable, target, outPath string, size domain.Dimensions) []string {
	flags := []string{
		"--headless",
		fmt.Sprintf("--screenshot=%s", outPath),
		fmt.Sprintf("--window-size=%d,%d", size.Width, size.Height),
		"--disable-dev-shm-usage",
		"--disable-gpu",
		glFlag(runtime.GOARCH),
		"--hide-scrollbars",
		"--in-process-gpu",
		"--js-flags=--jitless",
		"--disable-zero-copy",
		"--disable-gpu-memory-buffer-compositor-resources",
		"--disable-extensions",
		"--disable-plugins",
		"--mute-audio",
		"--no-sandbox",
	}

	if executable == "chromium-headless-shell" {
		return append([]string{target}, flags...)
	}
	return append(flags, target)
}

func glFlag(arch string) string {
	if swiftshaderArchs[arch] {
		return "--use-gl=swiftshader"
	}
	return "--use-gl=egl"
}

// normalizeTarget leaves absolute URL schemes alone, resolves existing
// local paths to file URIs and passes anything else through.
func normalizeTarget(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "file://") {
		return target
	}

	if _, err := os.Stat(target); err == nil {
		if abs, err := filepath.Abs(target); err == nil {
			if resolved, err := filepath.EvalSymlinks(abs); err == nil {
				abs = resolved
			}
			u := url.URL{Scheme: "file", Path: abs}
			return u.String()
		}
	}

	return target
}

func runCommand(ctx context.Context, name string, args []string) (runResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return runResult{exitCode: 0, stderr: []byte(stderr.String())}, nil
	}

	if ctx.Err() != nil {
		return runResult{}, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return runResult{exitCode: exitStatus(exitErr), stderr: []byte(stderr.String())}, nil
	}

	return runResult{}, err
}

// exitStatus reports the exit code the shell would, mapping a
// signal-terminated process to 128+signal.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}
