package model

// ProcessingOutcome is the structured result of one message processing run.
// The webhook has already been acknowledged by the time processing finishes,
// so today the outcome is only logged, but returning it keeps the processor
// usable from a durable queue consumer that would act on failures.
type ProcessingOutcome struct {
	MessageID string `json:"message_id"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

func SucceededOutcome(messageID string) ProcessingOutcome {
	return ProcessingOutcome{MessageID: messageID, Succeeded: true}
}

func FailedOutcome(messageID string, err error) ProcessingOutcome {
	outcome := ProcessingOutcome{MessageID: messageID}
	if err != nil {
		outcome.Error = err.Error()
	}
	return outcome
}
