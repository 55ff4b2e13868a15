package localdump

import (
	"context"
	"fmt"

	"github.com/toothbrush/tk-dump/tavernkeeper"
)

func (e *Exporter) exportRoleplay(ctx context.Context, id, campaignName, subpath string) {
	roleplay, ok := e.resolveRoleplay(ctx, id)
	if !ok {
		return
	}

	if !e.writeJSON(RoleplayKind, roleplay, roleplayFile(id, roleplay.Name()), subpath) {
		return
	}

	if e.Transcripts {
		e.writeTranscript(roleplay, campaignName, subpath)
	}
}

// resolveRoleplay fetches the scene record and hangs its messages, with their comments, off it.
func (e *Exporter) resolveRoleplay(ctx context.Context, id string) (tavernkeeper.Record, bool) {
	res := e.API.Get(ctx, tavernkeeper.RoleplayPath(id))
	switch res.Outcome {
	case tavernkeeper.Empty:
		e.debugf("Roleplay %s has no details, skipping.\n", id)
		e.tally(RoleplayKind).Skipped++
		return nil, false
	case tavernkeeper.Failed:
		e.failf("roleplay %s: %s", id, res.Describe())
		e.tally(RoleplayKind).Failed++
		return nil, false
	}
	roleplay := res.Record

	messages := e.API.GetPaged(ctx, tavernkeeper.RoleplayMessagesPath(id), "messages", tavernkeeper.PageQuery{})
	e.checkList(RoleplayKind, fmt.Sprintf("messages of roleplay %s", id), messages)

	for _, msg := range messages.Items {
		if msg.Int("comment_count") <= 0 {
			continue
		}
		mid := msg.ID()
		comments := e.API.GetPaged(ctx, tavernkeeper.MessageCommentsPath(id, mid), "comments", tavernkeeper.PageQuery{})
		e.checkList(RoleplayKind, fmt.Sprintf("comments of message %s in roleplay %s", mid, id), comments)
		msg["comments"] = comments.Items
	}

	// only attached once every comment list is in place
	roleplay["messages"] = messages.Items

	return roleplay, true
}
