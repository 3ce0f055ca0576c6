package commands

import (
	"errors"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// MaxOutboxBatchSize bounds how many messages one relay run publishes.
const MaxOutboxBatchSize = 1000

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand asks for one batch of pending outbox messages to be
// published.
type PublishOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize < 1 || batchSize > MaxOutboxBatchSize {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, MaxOutboxBatchSize)
	}
	return PublishOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

func (c PublishOutboxCommand) BatchSize() int { return c.batchSize }
