package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"py2ts/internal/pipeline"
	"py2ts/internal/ui"
)

type batchOutcome struct {
	result *pipeline.Result
	err    error
}

// runBatchWithUI runs the batch while a Bubble Tea program renders per-file
// progress from the pipeline's event channel.
func runBatchWithUI(ctx context.Context, title string, files []string, req *pipeline.Request) (*pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Run(ctx, &reqCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
