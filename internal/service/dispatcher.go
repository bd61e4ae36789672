package service

import (
	"context"
	"time"

	"gmail-reaper/internal/logger"
	"gmail-reaper/internal/model"
)

// goDispatcher runs each accepted message on its own goroutine. There is no
// queue, no retry and no handle back to the caller: a crash loses in-flight
// work. That matches the delivery model of the webhook — the platform has
// already been acknowledged by the time processing starts.
type goDispatcher struct {
	processor Processor
	timeout   time.Duration
	logger    *logger.Logger
}

func NewGoDispatcher(processor Processor, timeout time.Duration, logger *logger.Logger) Dispatcher {
	return &goDispatcher{
		processor: processor,
		timeout:   timeout,
		logger:    logger,
	}
}

func (d *goDispatcher) Dispatch(msg *model.GmailMessage, filterPrompt string) {
	d.logger.Info("Queued email", msg.ID, "for processing")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Panic in detached processing task for email", msg.ID, ":", r)
			}
		}()

		// The task is detached from the request, so it gets its own context
		// bounded by the processing timeout.
		ctx := context.Background()
		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}

		outcome := d.processor.Process(ctx, msg, filterPrompt)
		if outcome.Succeeded {
			d.logger.Info("Processing succeeded for email", outcome.MessageID)
		} else {
			d.logger.Error("Processing failed for email", outcome.MessageID, ":", outcome.Error)
		}
	}()
}
