package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		{"no build info", nil, false, "devel"},
		{"installed at a tag", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}}, true, "v0.3.0"},
		{"local build without vcs", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true, "devel"},
		{"local build", &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123"},
				{Key: "vcs.modified", Value: "false"},
			},
		}, true, "devel-0123456789ab"},
		{"local build, uncommitted changes", &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true, "devel-abc123-dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildVersion(tt.info, tt.ok))
		})
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	assert.Equal(t, "tk-dump/v9.9.9", userAgent())

	Version = ""
	assert.Regexp(t, `^tk-dump/\S+$`, userAgent())
}

func TestNewAPISendsUserAgent(t *testing.T) {
	oldID, oldVersion := SessionID, Version
	t.Cleanup(func() { SessionID, Version = oldID, oldVersion })
	SessionID, Version = "sekrit", "v1.0.0"

	api, err := newAPI(0)
	if assert.NoError(t, err) {
		assert.Equal(t, "tk-dump/v1.0.0", api.Headers().Get("User-Agent"))
		assert.Zero(t, api.Delay)
	}
}
