package localdump

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Kind of exported item, for bookkeeping.
type Kind string

const (
	CharacterKind  Kind = "character"
	PortraitKind   Kind = "portrait"
	CampaignKind   Kind = "campaign"
	RoleplayKind   Kind = "roleplay"
	DiscussionKind Kind = "discussion"
	IndexKind      Kind = "index"
	TranscriptKind Kind = "transcript"
)

// Tally counts what happened to items of one kind.
type Tally struct {
	Exported int
	Skipped  int
	Failed   int
	// Lists that were only partly fetched.
	Partial int
}

func (e *Exporter) tally(kind Kind) *Tally {
	if e.tallies == nil {
		e.tallies = make(map[Kind]*Tally)
	}
	t, ok := e.tallies[kind]
	if !ok {
		t = &Tally{}
		e.tallies[kind] = t
	}
	return t
}

// Tallies returns a copy of the counts so far.
func (e *Exporter) Tallies() map[Kind]Tally {
	out := make(map[Kind]Tally, len(e.tallies))
	for k, t := range e.tallies {
		out[k] = *t
	}
	return out
}

func (e *Exporter) failures() int {
	n := 0
	for _, t := range e.tallies {
		n += t.Failed
	}
	return n
}

func (e *Exporter) logSummary() {
	kinds := maps.Keys(e.tallies)
	slices.Sort(kinds)

	e.infof("Export complete in %s:\n", e.Sink.Root)
	for _, k := range kinds {
		t := e.tallies[k]
		e.infof("  %-10s exported %d, skipped %d, failed %d, partial lists %d\n",
			k, t.Exported, t.Skipped, t.Failed, t.Partial)
	}
}
