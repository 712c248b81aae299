package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// SpinnerSink shows a spinner on the terminal while a stage is running
type SpinnerSink struct {
	out            io.Writer
	spinner        *spinner.Spinner
	currentStage   string
	stageStartTime time.Time
}

// NewSpinnerSink creates a spinner sink writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	opt := spinner.WithWriter(out)
	if f, ok := out.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt)
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	failed := event.Stage == string(usecase.StageFailed)
	if r.currentStage != "" && r.currentStage != event.Stage && !failed {
		r.completeCurrentStage()
	}
	if r.currentStage != event.Stage {
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if pending, ok := event.Metadata.(*models.PendingDeployment); ok && pending != nil {
		r.println(color.New(color.Faint), fmt.Sprintf("  tx %s", pending.TxHash.Hex()))
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}

	switch usecase.DeployStage(event.Stage) {
	case usecase.StageCompleted, usecase.StageFailed:
		r.spinner.Stop()
		r.currentStage = ""
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.println(color.New(color.FgRed), message)
}

// println writes a line with the spinner paused
func (r *SpinnerSink) println(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage prints how long the finished stage took
func (r *SpinnerSink) completeCurrentStage() {
	if r.currentStage != string(usecase.StageConfirming) {
		return
	}
	elapsed := time.Since(r.stageStartTime).Round(time.Millisecond)
	r.println(color.New(color.FgGreen), fmt.Sprintf("✓ confirmed (%s)", elapsed))
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
