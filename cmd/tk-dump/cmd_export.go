/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/tk-dump/localdump"
	"github.com/toothbrush/tk-dump/tavernkeeper"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

var exportUsage = strings.TrimSpace(`
Export your characters (with portraits) and then your campaigns, with every roleplay, message,
comment and discussion in them.  Each run writes to a fresh export_data_<timestamp> directory
below --store; nothing from earlier runs is reused.
`)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export characters and campaigns",
	Long:  exportUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), localdump.CharacterWalk, localdump.CampaignWalk)
	},
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Export characters and their portraits only",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), localdump.CharacterWalk)
	},
}

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Export campaigns only",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), localdump.CampaignWalk)
	},
}

var (
	WithVCR     bool
	Transcripts bool
)

func init() {
	for _, c := range []*cobra.Command{exportCmd, charactersCmd, campaignsCmd} {
		rootCmd.AddCommand(c)

		c.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record responses, and replay them on later runs")
		c.Flags().BoolVar(&Transcripts, "transcripts", false, "also write a Markdown transcript of each roleplay")
	}
}

func runExport(ctx context.Context, walks ...localdump.Walk) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if UserID == "" {
		return fmt.Errorf("export: please provide --user-id")
	}

	api, err := newAPI(Delay)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if WithVCR {
		r, err := vcrRecorder()
		if err != nil {
			return err
		}
		defer r.Stop() // Make sure recorder is stopped once done with it

		api.Client = r.GetDefaultClient()
	}

	storePath, err := homedir.Expand(LocalStore)
	if err != nil {
		return fmt.Errorf("export: couldn't expand homedir: %w", err)
	}

	sink, err := localdump.NewSink(filepath.Join(storePath, localdump.RootName(time.Now())))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	exporter, err := localdump.NewExporter(api, sink, UserID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	exporter.Transcripts = Transcripts
	exporter.Logger = log.New(os.Stderr, "", log.LstdFlags)
	exporter.Verbose = Debug
	if !Debug {
		// bars and per-item logging don't mix
		exporter.Progress = os.Stderr
	}

	log.Printf("Exporting user %s to %s...\n", UserID, sink.Root)
	if err := exporter.Run(ctx, walks...); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

// newAPI builds a client from the persistent flags, running --session-cmd if needed.
func newAPI(delay time.Duration) (*tavernkeeper.API, error) {
	session, err := sessionToken()
	if err != nil {
		return nil, err
	}

	api, err := tavernkeeper.NewAPI(Host, session)
	if err != nil {
		return nil, fmt.Errorf("couldn't instantiate Tavern Keeper API: %w", err)
	}
	api.Delay = delay
	api.UserAgent = userAgent()
	debugLog("Host: %s, delay: %s, user agent: %s\n", api.BaseURI, api.Delay, api.UserAgent)

	return api, nil
}

func sessionToken() (string, error) {
	if SessionID != "" {
		return SessionID, nil
	}
	if len(SessionCmd) < 1 {
		return "", fmt.Errorf("please provide --session-id or --session-cmd")
	}

	output, err := exec.Command(SessionCmd[0], SessionCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("couldn't execute session-cmd '%v': %w", SessionCmd, err)
	}

	return strings.Split(string(output), "\n")[0], nil
}

func vcrRecorder() (*recorder.Recorder, error) {
	opts := &recorder.Options{
		CassetteName:       "fixtures/tk-dump",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("export: couldn't set up go-vcr recording: %w", err)
	}

	// Keep the session cookie out of the cassette
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Cookie")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	return r, nil
}
