package localdump

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/toothbrush/tk-dump/internal/termfmt"
	"github.com/toothbrush/tk-dump/tavernkeeper"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Walk names one of the independent root traversals.
type Walk int8

const (
	CharacterWalk Walk = iota
	CampaignWalk
)

func (w Walk) String() string {
	if w == CampaignWalk {
		return "campaigns"
	}
	return "characters"
}

// Exporter walks everything reachable from one user and writes it below Sink.Root.  It does one
// thing at a time: every request and every write happens in sequence.
type Exporter struct {
	API    *tavernkeeper.API
	Sink   *Sink
	UserID string

	// Also write a Markdown transcript next to each roleplay.
	Transcripts bool

	Logger *log.Logger
	// Log every fetch and write, not just phases and problems.
	Verbose bool

	// Where progress bars go; nil hides them.
	Progress io.Writer

	tallies map[Kind]*Tally
}

func NewExporter(api *tavernkeeper.API, sink *Sink, userID string) (*Exporter, error) {
	if api == nil || sink == nil {
		return nil, fmt.Errorf("localdump: exporter needs both an API and a sink")
	}
	if userID == "" {
		return nil, fmt.Errorf("localdump: user id is empty, please set --user-id")
	}

	return &Exporter{
		API:    api,
		Sink:   sink,
		UserID: userID,
		Logger: log.New(os.Stderr, "", log.LstdFlags),
	}, nil
}

// Run performs the given walks in order (characters then campaigns if none are given), logs a
// summary, and reports an error if any item could not be exported.  Failed items don't stop the
// walk; only a cancelled context does.
func (e *Exporter) Run(ctx context.Context, walks ...Walk) error {
	if len(walks) == 0 {
		walks = []Walk{CharacterWalk, CampaignWalk}
	}

	for _, w := range walks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("localdump: %s walk not started: %w", w, err)
		}

		var err error
		switch w {
		case CharacterWalk:
			err = e.ExportCharacters(ctx)
		case CampaignWalk:
			err = e.ExportCampaigns(ctx)
		default:
			err = fmt.Errorf("localdump: unreachable case walk = %d", w)
		}
		if err != nil {
			return fmt.Errorf("localdump: %s walk aborted: %w", w, err)
		}
	}

	e.logSummary()

	if failed := e.failures(); failed > 0 {
		return fmt.Errorf("localdump: %d item(s) failed to export, see log above", failed)
	}
	return nil
}

func (e *Exporter) infof(format string, a ...any) {
	e.Logger.Printf(format, a...)
}

func (e *Exporter) debugf(format string, a ...any) {
	if e.Verbose {
		e.Logger.Printf(format, a...)
	}
}

func (e *Exporter) warnf(format string, a ...any) {
	e.Logger.Printf("%s %s", termfmt.Warning().V("warning:"), fmt.Sprintf(format, a...))
}

func (e *Exporter) failf(format string, a ...any) {
	e.Logger.Printf("%s %s", termfmt.Failure().V("failed:"), fmt.Sprintf(format, a...))
}

// writeJSON writes one document and books the outcome against kind.
func (e *Exporter) writeJSON(kind Kind, doc any, filename string, subpath string) bool {
	p, err := e.Sink.WriteJSON(doc, filename, subpath)
	if err != nil {
		e.failf("%s %s: %v", kind, filename, err)
		e.tally(kind).Failed++
		return false
	}
	e.debugf("Exported %s: %s\n", kind, p)
	e.tally(kind).Exported++
	return true
}

// checkList logs a paged fetch that stopped early.  The items gathered are still used.
func (e *Exporter) checkList(kind Kind, what string, res tavernkeeper.PagedResult) {
	if res.Outcome == tavernkeeper.Failed {
		e.warnf("%s is incomplete after %d page(s), kept %d item(s): %s", what, res.Pages, len(res.Items), res.Describe())
		e.tally(kind).Partial++
	}
	if res.Truncated {
		e.warnf("%s claims more than %d pages, stopped there", what, res.Pages)
		e.tally(kind).Partial++
	}
}

func (e *Exporter) newProgress() *mpb.Progress {
	return mpb.New(mpb.WithWidth(64), mpb.WithOutput(e.Progress))
}

func addBar(p *mpb.Progress, phaseName string, total int) *mpb.Bar {
	return p.AddBar(int64(total),
		mpb.PrependDecorators(
			// display our name with one space on the right
			decor.Name(fmt.Sprintf("%s:", phaseName),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)
}

// finishBar makes sure p.Wait() won't block on a bar we left early or that never had work.
func finishBar(bar *mpb.Bar) {
	if !bar.Completed() {
		bar.Abort(false)
	}
}
