package escalate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"linkwatch/internal/config"
	"linkwatch/internal/logger"
)

// CommandCycler runs the configured power-cycle executable. Its combined
// output goes to a dedicated log file so plug-driver chatter stays out of
// the monitor log.
type CommandCycler struct {
	log     *slog.Logger
	cfg     config.PowerCycleConfig
	backoff time.Duration
}

// NewCommandCycler creates a CommandCycler from the power-cycle config
func NewCommandCycler(log *slog.Logger, cfg config.PowerCycleConfig) *CommandCycler {
	return &CommandCycler{
		log:     log,
		cfg:     cfg,
		backoff: 5 * time.Second,
	}
}

// Cycle invokes the command, retrying up to MaxAttempts with a growing
// delay between attempts. Each attempt gets the full configured timeout.
func (c *CommandCycler) Cycle(ctx context.Context) error {
	if len(c.cfg.Command) == 0 {
		return fmt.Errorf("no power-cycle command configured")
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		runCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		output, err := exec.CommandContext(runCtx, c.cfg.Command[0], c.cfg.Command[1:]...).CombinedOutput()
		cancel()

		c.appendLog(attempt, output, err)

		if err == nil {
			c.log.Info("power cycle command completed", slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err
		c.log.Warn("power cycle command failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.cfg.MaxAttempts),
			logger.Err(err),
		)

		if attempt < c.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
	}

	return fmt.Errorf("power cycle failed after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *CommandCycler) appendLog(attempt int, output []byte, runErr error) {
	if c.cfg.LogPath == "" {
		return
	}

	if dir := filepath.Dir(c.cfg.LogPath); dir != "." {
		os.MkdirAll(dir, 0o755)
	}

	f, err := os.OpenFile(c.cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		c.log.Error("failed to open power-cycle log", logger.Err(err))
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "=== %s attempt %d ===\n", time.Now().Format(time.RFC3339), attempt)
	f.Write(output)
	if len(output) > 0 && output[len(output)-1] != '\n' {
		f.Write([]byte{'\n'})
	}
	if runErr != nil {
		fmt.Fprintf(f, "error: %v\n", runErr)
	}
}
