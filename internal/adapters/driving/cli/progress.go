package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

const progressBarWidth = 30

// progressPrinter renders upload progress. On a terminal it redraws a
// single bar; elsewhere it prints one line per status change.
type progressPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	tty   bool
	last  domain.UploadStatus
	drawn bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, tty: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// observe is a driving.ProgressObserver.
func (p *progressPrinter) observe(progress domain.UploadProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tty {
		fmt.Fprintf(p.out, "\r%s %3d%% %-24s", progressBar(progress.Progress), progress.Progress, progress.Message)
		p.drawn = true
		return
	}

	if progress.Status == p.last {
		return
	}
	p.last = progress.Status
	msg := progress.Message
	if msg == "" {
		msg = string(progress.Status)
	}
	fmt.Fprintf(p.out, "%s (%d%%)\n", msg, progress.Progress)
}

// finish ends a redrawn bar with a newline.
func (p *progressPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}

func progressBar(percent int) string {
	percent = max(0, min(100, percent))
	filled := percent * progressBarWidth / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled) + "]"
}
