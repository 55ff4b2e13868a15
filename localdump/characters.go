package localdump

import (
	"context"
	"net/http"

	"github.com/toothbrush/tk-dump/tavernkeeper"
)

// ExportCharacters writes the user's character index, then every character with its portrait.
func (e *Exporter) ExportCharacters(ctx context.Context) error {
	characters := e.characterList(ctx)

	p := e.newProgress()
	bar := addBar(p, "characters", len(characters))
	defer p.Wait()
	defer finishBar(bar)

	for _, c := range characters {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.exportCharacter(ctx, c.ID(), c.Name())
		bar.Increment()
	}

	e.infof("Character download is complete.\n")
	return nil
}

// characterList gathers active then archived characters and exports them as one index.
func (e *Exporter) characterList(ctx context.Context) []tavernkeeper.Record {
	resource := tavernkeeper.UserCharactersPath(e.UserID)

	active := e.API.GetPaged(ctx, resource, "characters", tavernkeeper.PageQuery{})
	e.checkList(IndexKind, "active character list", active)

	archived := e.API.GetPaged(ctx, resource, "characters", tavernkeeper.PageQuery{Archived: true})
	e.checkList(IndexKind, "archived character list", archived)

	characters := append(active.Items, archived.Items...)
	e.writeJSON(IndexKind, characters, characterIndexFile(e.UserID), charactersDir)

	return characters
}

func (e *Exporter) exportCharacter(ctx context.Context, id, name string) {
	e.debugf("Fetching character %s %s\n", id, name)

	res := e.API.Get(ctx, tavernkeeper.CharacterPath(id))
	switch res.Outcome {
	case tavernkeeper.Empty:
		e.debugf("Character %s has no details, skipping.\n", id)
		e.tally(CharacterKind).Skipped++
		return
	case tavernkeeper.Failed:
		e.failf("character %s: %s", id, res.Describe())
		e.tally(CharacterKind).Failed++
		return
	}

	label := Label(id, name)
	subpath := characterSubpath(label)
	if !e.writeJSON(CharacterKind, res.Record, label+".json", subpath) {
		return
	}

	portraitURL := res.Record.String("image_url")
	if portraitURL == "" {
		e.debugf("No portrait url for character %s.\n", id)
		e.tally(PortraitKind).Skipped++
		return
	}
	e.exportPortrait(ctx, portraitURL, label+".jpg", subpath)
}

func (e *Exporter) exportPortrait(ctx context.Context, portraitURL, filename, subpath string) {
	resp, err := e.API.Download(ctx, portraitURL)
	if err != nil {
		e.failf("portrait %s: %v", filename, err)
		e.tally(PortraitKind).Failed++
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.warnf("portrait download failed for %s: status code %d", filename, resp.StatusCode)
		e.tally(PortraitKind).Skipped++
		return
	}

	p, err := e.Sink.WriteStream(resp.Body, filename, subpath)
	if err != nil {
		e.failf("portrait %s: %v", filename, err)
		e.tally(PortraitKind).Failed++
		return
	}
	e.debugf("Exported portrait: %s\n", p)
	e.tally(PortraitKind).Exported++
}
