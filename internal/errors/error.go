package errors

import "github.com/pkg/errors"

var (
	// event publishing errors
	ErrPublisherClosed       = errors.New("publisher is closed")
	ErrPublishNotConfirmed   = errors.New("message was not confirmed by server")
	ErrPublishConfirmTimeout = errors.New("publish confirmation timeout")
)
