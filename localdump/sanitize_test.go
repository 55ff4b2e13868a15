package localdump

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"1_My Camp!", "1_My_Camp_"},
		{"Anna-Lee", "AnnaLee"},
		{"a - b", "a_b"},
		{"a    b", "a_b"},
		{"x\ty\nz", "x_y_z"},
		{"foo._bar", "foo.bar"},
		{"foo.__-_bar", "foo.bar"},
		{"The End..json", "The_End..json"},
		{"index_roleplay_list_campaign_1_My Camp!.json", "index_roleplay_list_campaign_1_My_Camp_.json"},
		{"Café/Ünïcode", "Café_Ünïcode"},
		{"日本語 名前", "日本語_名前"},
		{"../../etc/passwd", "....etc_passwd"},
		{"what? <really>", "what_really_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeProperties(t *testing.T) {
	alphabet := []rune("aZ09_-. /\\:?*!'\"<>|\t\x00é日-__..--")
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(24)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		in := string(runes)
		out := Sanitize(in)

		for _, r := range out {
			ok := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
			assert.Truef(t, ok, "Sanitize(%q) = %q contains %q", in, out, r)
		}
		assert.NotContains(t, out, "__", "input %q", in)
		assert.NotContains(t, out, "-", "input %q", in)
		assert.NotContains(t, out, "._", "input %q", in)

		// pure, and already-clean output stays put
		assert.Equal(t, out, Sanitize(in))
		assert.Equal(t, out, Sanitize(out))
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "6_Old_Bob", Label("6", "Old Bob"))
	assert.Equal(t, "5_AnnaLee", Label("5", "Anna-Lee"))
	assert.False(t, strings.Contains(Label("7", "a/b"), "/"))
}
