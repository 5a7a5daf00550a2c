// Package pump drives the analyzer's sample pump and reports completion to
// the sampler.
package pump

import (
	"context"

	"go.uber.org/zap"

	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/wire"
)

// Controller issues pump intents through the analyzer channel.
type Controller struct {
	analyzer analyzer.Exchanger
	serial   link.LineWriter
	logger   *zap.Logger
}

func New(a analyzer.Exchanger, serial link.LineWriter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		analyzer: a,
		serial:   serial,
		logger:   logger,
	}
}

// Stop asks the analyzer to stop the pump. Unless suppressDone is set the
// done marker is written to the sampler whatever the analyzer answered, so
// the sampler never waits on a lost acknowledgment.
func (c *Controller) Stop(ctx context.Context, suppressDone bool) analyzer.Result {
	return c.run(ctx, analyzer.StopPump(), suppressDone)
}

// Start is Stop's counterpart for StartPump.
func (c *Controller) Start(ctx context.Context, suppressDone bool) analyzer.Result {
	return c.run(ctx, analyzer.StartPump(), suppressDone)
}

func (c *Controller) run(ctx context.Context, cmd analyzer.Command, suppressDone bool) analyzer.Result {
	res := c.analyzer.Exchange(ctx, cmd)
	if !res.OK() {
		c.logger.Warn("Pump command not acknowledged",
			zap.String("command", cmd.String()),
			zap.Stringer("status", res.Status))
	}

	if suppressDone {
		return res
	}
	if err := c.serial.WriteLine(ctx, wire.Done); err != nil {
		c.logger.Error("Failed to signal pump completion", zap.Error(err))
	}
	return res
}
