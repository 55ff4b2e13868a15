package termfmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColours(t *testing.T) {
	assert.Equal(t, "\x1b[31mx\x1b[0m", C16Color{Name: Red}.Wrap("x"))
	assert.Equal(t, "\x1b[91mx\x1b[0m", C16Color{Name: LightRed}.Wrap("x"))
	assert.Equal(t, "\x1b[41mx\x1b[0m", C16Color{Name: Red, Bg: true}.Wrap("x"))
	assert.Equal(t, "\x1b[39mx\x1b[0m", C16Color{}.Wrap("x"))
}

func TestStyleFormat(t *testing.T) {
	t.Cleanup(func() { Disable(false) })

	assert.Equal(t, "\x1b[1m\x1b[33mwarning:\x1b[0m\x1b[0m", fmt.Sprintf("%s", Warning().V("warning:")))
	assert.Equal(t, "\x1b[1m  7\x1b[0m", fmt.Sprintf("%3d", Bold().V(7)))

	Disable(true)
	assert.Equal(t, "failed:", fmt.Sprintf("%s", Failure().V("failed:")))
	assert.Equal(t, "ab", fmt.Sprintf("%s", Bold().V("a\x07b")))
}
