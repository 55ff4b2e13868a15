package localdump

import (
	"fmt"
	"path"
	"time"
)

const charactersDir = "characters"

// RootName is the crawl root directory for a run started at t, e.g. export_data_20240131_154502.
func RootName(t time.Time) string {
	return "export_data_" + t.Format("20060102_150405")
}

func characterSubpath(label string) string {
	return path.Join(charactersDir, label)
}

func roleplaysSubpath(campaignSubpath string) string {
	return path.Join(campaignSubpath, "roleplays")
}

func discussionsSubpath(campaignSubpath string) string {
	return path.Join(campaignSubpath, "discussions")
}

// File names below are sanitized by the Sink when written.

func campaignIndexFile(userID string) string {
	return fmt.Sprintf("index_campaign_list_user_%s.json", userID)
}

func characterIndexFile(userID string) string {
	return fmt.Sprintf("index_char_list_user_%s.json", userID)
}

func roleplayIndexFile(campaignID, campaignName string) string {
	return fmt.Sprintf("index_roleplay_list_campaign_%s_%s.json", campaignID, campaignName)
}

func discussionIndexFile(campaignID, campaignName string) string {
	return fmt.Sprintf("index_discussion_list_campaign_%s_%s.json", campaignID, campaignName)
}

func roleplayFile(id, name string) string {
	return fmt.Sprintf("roleplay_%s_%s.json", id, name)
}

func roleplayTranscriptFile(id, name string) string {
	return fmt.Sprintf("roleplay_%s_%s.md", id, name)
}

func discussionFile(id, name string) string {
	return fmt.Sprintf("discussion_%s_%s.json", id, name)
}
