package localdump

import (
	"context"
	"fmt"

	"github.com/toothbrush/tk-dump/tavernkeeper"
	"github.com/vbauerster/mpb/v8"
)

// ExportCampaigns writes the user's campaign index and then, campaign by campaign, its roleplays
// followed by its discussions.
func (e *Exporter) ExportCampaigns(ctx context.Context) error {
	campaigns := e.campaignList(ctx)

	p := e.newProgress()
	bars := newCampaignBars(p, len(campaigns))
	defer p.Wait()
	defer bars.finish()

	for _, c := range campaigns {
		if err := e.exportCampaign(ctx, bars, c.ID(), c.Name()); err != nil {
			return err
		}
		bars.campaigns.Increment()
	}

	e.infof("All campaigns downloaded. Process complete.\n")
	return nil
}

// campaignBars is the fixed set of bars for the campaign walk.  The roleplay and discussion bars
// start empty and grow as each campaign's lists come in, so the screen holds three lines however
// many campaigns there are.
type campaignBars struct {
	campaigns   *mpb.Bar
	roleplays   *mpb.Bar
	discussions *mpb.Bar
}

func newCampaignBars(p *mpb.Progress, campaigns int) *campaignBars {
	return &campaignBars{
		campaigns:   addBar(p, "campaigns", campaigns),
		roleplays:   addBar(p, "roleplays", 0),
		discussions: addBar(p, "discussions", 0),
	}
}

// grow adds n items of work to a bar made with a zero total.
func grow(bar *mpb.Bar, n int) {
	bar.SetTotal(bar.Current()+int64(n), false)
}

func (b *campaignBars) finish() {
	finishBar(b.campaigns)
	// settle the open-ended bars on whatever they reached
	b.roleplays.SetTotal(-1, true)
	b.discussions.SetTotal(-1, true)
}

func (e *Exporter) campaignList(ctx context.Context) []tavernkeeper.Record {
	res := e.API.Get(ctx, tavernkeeper.UserCampaignsPath(e.UserID))
	switch res.Outcome {
	case tavernkeeper.Empty:
		e.warnf("campaign list for user %s is empty", e.UserID)
		e.writeJSON(IndexKind, tavernkeeper.Record{}, campaignIndexFile(e.UserID), "")
		return nil
	case tavernkeeper.Failed:
		e.failf("campaign list for user %s: %s", e.UserID, res.Describe())
		e.tally(IndexKind).Failed++
		return nil
	}

	e.writeJSON(IndexKind, res.Record, campaignIndexFile(e.UserID), "")
	return res.Record.Records("campaigns")
}

func (e *Exporter) exportCampaign(ctx context.Context, bars *campaignBars, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subpath := Label(id, name)

	e.debugf("Fetching roleplay list for campaign %s.\n", id)
	roleplays := e.API.GetPaged(ctx, tavernkeeper.CampaignRoleplaysPath(id), "roleplays", tavernkeeper.PageQuery{})
	e.checkList(IndexKind, fmt.Sprintf("roleplay list of campaign %s", id), roleplays)
	e.writeJSON(IndexKind, roleplays.Items, roleplayIndexFile(id, name), roleplaysSubpath(subpath))

	e.debugf("Fetching discussion list for campaign %s.\n", id)
	discussions := e.API.GetPaged(ctx, tavernkeeper.CampaignDiscussionsPath(id), "discussions", tavernkeeper.PageQuery{})
	e.checkList(IndexKind, fmt.Sprintf("discussion list of campaign %s", id), discussions)
	e.writeJSON(IndexKind, discussions.Items, discussionIndexFile(id, name), discussionsSubpath(subpath))

	if err := e.exportRoleplays(ctx, bars.roleplays, id, name, subpath, roleplays.Items); err != nil {
		return err
	}
	e.debugf("Roleplays complete for campaign %s.\n", id)

	if err := e.exportDiscussions(ctx, bars.discussions, id, subpath, discussions.Items); err != nil {
		return err
	}
	e.infof("Campaign %s complete.\n", id)

	e.tally(CampaignKind).Exported++
	return nil
}

func (e *Exporter) exportRoleplays(ctx context.Context, bar *mpb.Bar, campaignID, campaignName, subpath string, roleplays []tavernkeeper.Record) error {
	grow(bar, len(roleplays))

	for _, rp := range roleplays {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.debugf("Getting roleplay %s for campaign %s.\n", rp.ID(), campaignID)
		e.exportRoleplay(ctx, rp.ID(), campaignName, roleplaysSubpath(subpath))
		bar.Increment()
	}
	return nil
}

func (e *Exporter) exportDiscussions(ctx context.Context, bar *mpb.Bar, campaignID, subpath string, discussions []tavernkeeper.Record) error {
	grow(bar, len(discussions))

	for _, d := range discussions {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.debugf("Getting discussion %s for campaign %s.\n", d.ID(), campaignID)
		e.exportDiscussion(ctx, campaignID, d.ID(), discussionsSubpath(subpath))
		bar.Increment()
	}
	return nil
}
