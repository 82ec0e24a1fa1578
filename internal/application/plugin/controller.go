package plugin

import (
	"context"
	"time"

	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/retry"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

type State int

const (
	StateIdle State = iota
	StateStopped
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// Controller pauses the traffic-shaping plugin around a run. All actions are
// best effort: failures are logged and never abort the run. Only a successful
// Stop arms Restart and Finish.
type Controller struct {
	plugin   *entity.Plugin
	runner   contract.ServiceRunner
	sleep    retry.SleepFunc
	state    State
	armed    bool
	finished bool
}

func NewController(p *entity.Plugin, runner contract.ServiceRunner, sleep retry.SleepFunc) *Controller {
	if sleep == nil {
		sleep = retry.ContextSleep
	}
	return &Controller{plugin: p, runner: runner, sleep: sleep}
}

func (c *Controller) State() State { return c.state }

// Stopped reports whether the plugin was stopped by this run.
func (c *Controller) Stopped() bool { return c.armed }

// Stop pauses the plugin when the group's run calls for it.
func (c *Controller) Stop(ctx context.Context, g *entity.ResolveGroup) bool {
	log := logger.FromContext(ctx)
	if !c.plugin.ShouldPause(g) {
		if c.plugin.Enabled() {
			log.Info("plugin left running for this run", "plugin", c.plugin.Name)
		}
		return false
	}
	if c.armed {
		return true
	}

	if err := c.runner.Run(ctx, c.plugin.Name, contract.ActionStop); err != nil {
		log.Error("failed to stop plugin", "plugin", c.plugin.Name, "error", err)
		return false
	}
	log.Info("plugin stopped", "plugin", c.plugin.Name)
	c.state = StateStopped
	c.armed = true
	return true
}

// Restart brings the plugin back after a family produced candidates and
// waits for it to settle.
func (c *Controller) Restart(ctx context.Context) {
	if !c.armed || c.finished {
		return
	}
	log := logger.FromContext(ctx)

	if err := c.runner.Run(ctx, c.plugin.Name, contract.ActionRestart); err != nil {
		log.Error("failed to restart plugin", "plugin", c.plugin.Name, "error", err)
		return
	}
	c.state = StateRunning

	settle := c.plugin.Settle()
	log.Info("plugin restarted, waiting to settle", "plugin", c.plugin.Name, "delay", settle)
	if err := c.sleep(ctx, settle); err != nil {
		log.Warn("settle wait interrupted", "error", err)
	}
}

// Finish runs the final start once per run if Stop succeeded. It is safe to
// defer unconditionally.
func (c *Controller) Finish(ctx context.Context) {
	if !c.armed || c.finished {
		return
	}
	c.finished = true
	log := logger.FromContext(ctx)

	start := time.Now()
	if err := c.runner.Run(ctx, c.plugin.Name, contract.ActionStart); err != nil {
		log.Error("failed to start plugin", "plugin", c.plugin.Name, "error", err)
		return
	}
	c.state = StateIdle
	log.Info("plugin started", "plugin", c.plugin.Name, "duration", time.Since(start))
}
