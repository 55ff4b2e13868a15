package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestEffectiveConfigIsAValidConfigFile(t *testing.T) {
	oldUser, oldSession, oldStore, oldDelay, oldParsed := UserID, SessionID, LocalStore, Delay, ParsedConfig
	t.Cleanup(func() {
		UserID, SessionID, LocalStore, Delay, ParsedConfig = oldUser, oldSession, oldStore, oldDelay, oldParsed
	})

	transcripts := true
	UserID, SessionID, LocalStore, Delay = "42", "sekrit", "/srv/exports", 2*time.Second
	ParsedConfig = YamlConfig{Transcripts: &transcripts}

	out, err := yaml.Marshal(effectiveConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "sekrit")

	var back YamlConfig
	require.NoError(t, yaml.UnmarshalStrict(out, &back))
	assert.Equal(t, "42", back.UserID)
	assert.Equal(t, "/srv/exports", back.StorePath)
	assert.Equal(t, "2s", back.Delay)
	assert.Equal(t, "REDACTED", back.SessionID)
	require.NotNil(t, back.Transcripts)
	assert.True(t, *back.Transcripts)
	assert.Nil(t, back.WithVCR)
}
