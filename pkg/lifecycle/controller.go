// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/wlsctl/pkg/defaults"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
	"github.com/NVIDIA/wlsctl/pkg/transport"
)

const runtimesCollection = "serverLifeCycleRuntimes"

// Option is a functional option for configuring Controller instances.
type Option func(*Controller)

// Controller issues serverLifeCycleRuntimes requests against one endpoint.
type Controller struct {
	endpoint  *transport.Endpoint
	transport transport.Transport
	clock     clock.Clock

	maxPolls     int
	pollInterval time.Duration

	confirmRunning  bool
	confirmInterval time.Duration
	confirmTimeout  time.Duration
}

// WithMaxPolls sets the shutdown poll ceiling. Values below 1 are ignored.
func WithMaxPolls(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxPolls = n
		}
	}
}

// WithPollInterval sets the wait between shutdown polls. Values below or
// equal to zero are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithClock sets the clock the shutdown wait blocks on.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithConfirmRunning makes Start and Restart poll for RUNNING after the
// start request, for at most timeout. A zero timeout uses the default.
func WithConfirmRunning(timeout time.Duration) Option {
	return func(c *Controller) {
		c.confirmRunning = true
		if timeout > 0 {
			c.confirmTimeout = timeout
		}
	}
}

// WithConfirmInterval sets the RUNNING confirmation poll interval.
func WithConfirmInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.confirmInterval = d
		}
	}
}

// NewController returns a Controller bound to ep that sends through tr.
func NewController(ep *transport.Endpoint, tr transport.Transport, options ...Option) *Controller {
	c := &Controller{
		endpoint:        ep,
		transport:       tr,
		clock:           clock.RealClock{},
		maxPolls:        defaults.MaxShutdownPolls,
		pollInterval:    defaults.ShutdownPollInterval,
		confirmInterval: defaults.ConfirmRunningInterval,
		confirmTimeout:  defaults.ConfirmRunningTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ShutdownTimeout is the poll budget reported by a shutdown TimeoutError.
func (c *Controller) ShutdownTimeout() time.Duration {
	return time.Duration(c.maxPolls) * c.pollInterval
}

// Start issues the start request for t.Name.
func (c *Controller) Start(ctx context.Context, t Target) outcome.Outcome {
	err := c.validate(t)
	if err == nil {
		err = c.start(ctx, t.Name)
	}
	return c.report("start", StateStarted, t, err)
}

// Stop issues the shutdown request for t.Name.
func (c *Controller) Stop(ctx context.Context, t Target) outcome.Outcome {
	err := c.validate(t)
	if err == nil {
		err = c.action(ctx, t.Name, "shutdown")
	}
	return c.report("shutdown", StateStopped, t, err)
}

// Restart stops t.Name, waits for SHUTDOWN, and starts it again.
func (c *Controller) Restart(ctx context.Context, t Target) outcome.Outcome {
	err := c.validate(t)
	if err == nil {
		err = c.restart(ctx, t.Name)
	}
	return c.report("restart", StateRestarted, t, err)
}

// Apply drives r.Target to r.State.
func (c *Controller) Apply(ctx context.Context, r Request) outcome.Outcome {
	switch r.State {
	case StateStarted:
		return c.Start(ctx, r.Target)
	case StateStopped:
		return c.Stop(ctx, r.Target)
	case StateRestarted:
		return c.Restart(ctx, r.Target)
	default:
		err := apperrors.New(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid server state %q", r.State))
		return outcome.Report(Kind, r.Target.Name, r.State.String(), err)
	}
}

func (c *Controller) validate(t Target) error {
	if t.Name == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "server name is required")
	}
	return nil
}

func (c *Controller) report(op string, state State, t Target, err error) outcome.Outcome {
	observeOperation(op, err)
	if err != nil {
		slog.Error("server transition failed",
			"server", t.Name,
			"operation", op,
			"error", err)
	} else {
		slog.Info("server transition completed",
			"server", t.Name,
			"state", state)
	}
	return outcome.Report(Kind, t.Name, state.String(), err)
}

func (c *Controller) restart(ctx context.Context, name string) error {
	logPhase := func(p Phase) {
		slog.Debug("restart phase", "server", name, "phase", p)
	}
	logPhase(PhaseStopping)

	if err := c.action(ctx, name, "shutdown"); err != nil {
		logPhase(PhaseFailed)
		return err
	}

	logPhase(PhaseWaitingForShutdown)
	res := c.awaitShutdown(ctx, name)
	observeShutdownPolls(len(res.Attempts))

	switch res.Outcome {
	case PollObserved:
	case PollCancelled:
		logPhase(PhaseFailed)
		return &apperrors.CancelledError{Entity: name, Op: "restart", Cause: res.Cause}
	default:
		logPhase(PhaseFailed)
		return &apperrors.TimeoutError{
			Server:   name,
			Awaiting: RuntimeShutdown,
			Timeout:  c.ShutdownTimeout(),
			Attempts: len(res.Attempts),
		}
	}

	logPhase(PhaseStarting)
	if err := c.start(ctx, name); err != nil {
		logPhase(PhaseFailed)
		return err
	}

	logPhase(PhaseCompleted)
	return nil
}

// start issues the start request and, when enabled, confirms RUNNING.
func (c *Controller) start(ctx context.Context, name string) error {
	if err := c.action(ctx, name, "start"); err != nil {
		return err
	}
	if !c.confirmRunning {
		return nil
	}
	return c.awaitRunning(ctx, name)
}

func (c *Controller) action(ctx context.Context, name, op string) error {
	_, err := c.transport.Send(ctx, &transport.Request{
		Op:          op,
		URL:         c.endpoint.DomainRuntimeURL(runtimesCollection, name, op),
		Credentials: c.endpoint.Credentials(),
	})
	return err
}

// awaitShutdown polls until SHUTDOWN is reported, the ceiling is reached or
// ctx ends. The first poll is immediate; the wait follows each miss except
// the last.
func (c *Controller) awaitShutdown(ctx context.Context, name string) PollResult {
	res := PollResult{Awaiting: RuntimeShutdown, Outcome: PollTimedOut}
	begin := c.clock.Now()

	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		a := c.poll(ctx, name)
		a.Attempt = attempt
		a.Elapsed = c.clock.Since(begin)
		res.Attempts = append(res.Attempts, a)

		slog.Debug("shutdown poll",
			"server", name,
			"attempt", attempt,
			"status", a.Status,
			"state", a.State,
			"error", a.Err)

		if a.State == RuntimeShutdown {
			res.Outcome = PollObserved
			return res
		}
		if ctx.Err() != nil {
			res.Outcome = PollCancelled
			res.Cause = ctx.Err()
			return res
		}
		if attempt == c.maxPolls {
			break
		}

		select {
		case <-ctx.Done():
			res.Outcome = PollCancelled
			res.Cause = ctx.Err()
			return res
		case <-c.clock.After(c.pollInterval):
		}
	}

	slog.Warn("server did not report shutdown",
		"server", name,
		"attempts", len(res.Attempts),
		"last_state", res.LastState())
	return res
}

// awaitRunning polls until RUNNING is reported or the confirm timeout ends.
func (c *Controller) awaitRunning(ctx context.Context, name string) error {
	attempts := 0
	err := wait.PollUntilContextTimeout(ctx, c.confirmInterval, c.confirmTimeout, true,
		func(ctx context.Context) (bool, error) {
			attempts++
			a := c.poll(ctx, name)
			slog.Debug("running poll",
				"server", name,
				"attempt", attempts,
				"state", a.State,
				"error", a.Err)
			return a.State == RuntimeRunning, nil
		})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return &apperrors.CancelledError{Entity: name, Op: "start", Cause: ctx.Err()}
	}
	return &apperrors.TimeoutError{
		Server:   name,
		Awaiting: RuntimeRunning,
		Timeout:  c.confirmTimeout,
		Attempts: attempts,
	}
}

type runtimeStatus struct {
	State string `json:"state"`
}

// poll reads the server runtime. Only a 2xx JSON body yields a State.
func (c *Controller) poll(ctx context.Context, name string) PollAttempt {
	resp, err := c.transport.Send(ctx, &transport.Request{
		Op:          "status",
		URL:         c.endpoint.DomainRuntimeURL(runtimesCollection, name),
		Credentials: c.endpoint.Credentials(),
	})
	if err != nil {
		return PollAttempt{Err: err}
	}

	a := PollAttempt{Status: resp.Status}
	var body runtimeStatus
	if err := resp.DecodeJSON(&body); err != nil {
		a.Err = err
		return a
	}
	a.State = body.State
	return a
}
