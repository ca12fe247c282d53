package batch

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const progressLabel = "Analyzing audio"

// Progress draws a file counter to a writer. A nil *Progress draws nothing.
type Progress struct {
	out io.Writer
}

// NewProgress creates a progress display writing to out, or stderr when out is nil
func NewProgress(out io.Writer) *Progress {
	if out == nil {
		out = os.Stderr
	}
	return &Progress{out: out}
}

// ShouldShowProgress reports whether a bar is useful for count files.
// forced enables it even when stderr is not a terminal.
func ShouldShowProgress(count int, forced bool) bool {
	if count <= 1 {
		return false
	}
	return forced || isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

// runProgress tracks a single Run
type runProgress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

// start begins a bar for total files. The returned tracker is nil when p is nil.
func (p *Progress) start(total int) *runProgress {
	if p == nil {
		return nil
	}

	// Auto refresh keeps redrawing when out is not a terminal
	container := mpb.New(
		mpb.WithOutput(p.out),
		mpb.WithAutoRefresh(),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(progressLabel+" "),
			decor.CountersNoUnit("(%d/%d)"),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30), " done"),
		),
	)
	return &runProgress{container: container, bar: bar}
}

// done advances by one file that took elapsed to process
func (rp *runProgress) done(elapsed time.Duration) {
	if rp != nil {
		rp.bar.EwmaIncrement(elapsed)
	}
}

// finish waits for the final render, dropping the bar when the run was cut short
func (rp *runProgress) finish(aborted bool) {
	if rp == nil {
		return
	}
	if aborted {
		rp.bar.Abort(false)
	}
	rp.container.Wait()
}
