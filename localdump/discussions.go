package localdump

import (
	"context"
	"fmt"

	"github.com/toothbrush/tk-dump/tavernkeeper"
)

func (e *Exporter) exportDiscussion(ctx context.Context, campaignID, id, subpath string) {
	res := e.API.Get(ctx, tavernkeeper.DiscussionPath(campaignID, id))
	switch res.Outcome {
	case tavernkeeper.Empty:
		e.debugf("Discussion %s has no details, skipping.\n", id)
		e.tally(DiscussionKind).Skipped++
		return
	case tavernkeeper.Failed:
		e.failf("discussion %s: %s", id, res.Describe())
		e.tally(DiscussionKind).Failed++
		return
	}
	discussion := res.Record

	comments := e.API.GetPaged(ctx, tavernkeeper.DiscussionCommentsPath(campaignID, id), "comments", tavernkeeper.PageQuery{})
	e.checkList(DiscussionKind, fmt.Sprintf("comments of discussion %s", id), comments)
	discussion["comments"] = comments.Items

	e.writeJSON(DiscussionKind, discussion, discussionFile(id, discussion.Name()), subpath)
}
