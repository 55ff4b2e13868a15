package localdump

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/toothbrush/tk-dump/tavernkeeper"
	"gopkg.in/yaml.v3"
)

// TranscriptHeader is the YAML front matter on a roleplay transcript.
type TranscriptHeader struct {
	Title      string `yaml:"title"`
	RoleplayID string `yaml:"roleplay_id"`
	Campaign   string `yaml:"campaign,omitempty"`
	Messages   int    `yaml:"messages"`
	Comments   int    `yaml:"comments"`
}

func (e *Exporter) writeTranscript(roleplay tavernkeeper.Record, campaignName, subpath string) {
	transcript, err := RenderTranscript(roleplay, campaignName)
	filename := roleplayTranscriptFile(roleplay.ID(), roleplay.Name())
	if err != nil {
		e.failf("transcript %s: %v", filename, err)
		e.tally(TranscriptKind).Failed++
		return
	}

	p, err := e.Sink.WriteText(transcript, filename, subpath)
	if err != nil {
		e.failf("transcript %s: %v", filename, err)
		e.tally(TranscriptKind).Failed++
		return
	}
	e.debugf("Exported transcript: %s\n", p)
	e.tally(TranscriptKind).Exported++
}

// RenderTranscript turns a fully resolved roleplay into a readable Markdown document.  Message and
// comment bodies arrive as HTML in their "content" field.
func RenderTranscript(roleplay tavernkeeper.Record, campaignName string) (string, error) {
	converter := md.NewConverter("", true, nil)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	messages := roleplay.Records("messages")
	header := TranscriptHeader{
		Title:      roleplay.Name(),
		RoleplayID: roleplay.ID(),
		Campaign:   campaignName,
		Messages:   len(messages),
	}

	var body strings.Builder
	for _, msg := range messages {
		text, err := converter.ConvertString(msg.String("content"))
		if err != nil {
			return "", fmt.Errorf("localdump: failed to convert message %s to Markdown: %w", msg.ID(), err)
		}
		fmt.Fprintf(&body, "## %s\n\n", heading(msg))
		if text != "" {
			fmt.Fprintf(&body, "%s\n\n", text)
		}

		for _, c := range msg.Records("comments") {
			header.Comments++
			text, err := converter.ConvertString(c.String("content"))
			if err != nil {
				return "", fmt.Errorf("localdump: failed to convert comment %s to Markdown: %w", c.ID(), err)
			}
			fmt.Fprintf(&body, "%s\n\n", quote(fmt.Sprintf("**%s**: %s", author(c), text)))
		}
	}

	yamlHeader, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal header YAML: %w", err)
	}

	return fmt.Sprintf("---\n%s\n---\n%s", strings.TrimSpace(string(yamlHeader)), body.String()), nil
}

// author picks the most specific name we have for whoever wrote an item.
func author(r tavernkeeper.Record) string {
	for _, key := range []string{"character", "user"} {
		if name := r.Object(key).Name(); name != "" {
			return name
		}
	}
	return "unknown"
}

func heading(msg tavernkeeper.Record) string {
	when := msg.String("created_at")
	if when == "" {
		return author(msg)
	}
	return fmt.Sprintf("%s (%s)", author(msg), when)
}

func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}
