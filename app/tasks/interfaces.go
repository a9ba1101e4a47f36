package tasks

import (
	"context"
)

// Summarizer is the external summarization service, treated as a pure
// function from prompt text to prose text.
type Summarizer interface {
	Summarize(ctx context.Context, persona, prompt string) (string, error)
}

// Notifier announces a successful publish out of band.
type Notifier interface {
	Notify(text string) error
}

type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
