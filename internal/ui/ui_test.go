package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func monoTheme(t *testing.T) {
	t.Helper()
	SetTheme("mono")
	t.Cleanup(func() {
		SetTheme("classic")
		SetColorForcing(false, false)
	})
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 5))
	assert.Equal(t, "██░░░  50%", ProgressBar(1, 2, 5))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
	assert.Equal(t, "██████████ 125%", ProgressBar(5, 4, 10))
}

func TestPanelPadsToWidestLine(t *testing.T) {
	monoTheme(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "abcd"})

	want := strings.Join([]string{
		"+------+",
		"| ab   |",
		"| abcd |",
		"+------+",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPanelIgnoresANSI(t *testing.T) {
	monoTheme(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"\033[32mok\033[0m", "a x"})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "+-----+", lines[0])
	assert.Equal(t, "| \033[32mok\033[0m  |", lines[1])
}

func TestColorsDisabled(t *testing.T) {
	SetColorForcing(true, true)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestColorsForced(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
	assert.Equal(t, "x", C("", "x"))
}

func TestOKAndFail(t *testing.T) {
	monoTheme(t)
	var out, errOut bytes.Buffer
	OK(&out, "added")
	Fail(&errOut, "not found")
	assert.Equal(t, "x added\n", out.String())
	assert.Equal(t, "✖ not found\n", errOut.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestSetThemeUnknownFallsBackToClassic(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("neon")
	assert.Equal(t, "neon", Current().Name)
	SetTheme("sparkly")
	assert.Equal(t, "classic", Current().Name)
	assert.Equal(t, "☑", Current().BoxChecked)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"classic", "mono", "neon"}, Themes())
}

func TestNoColorEnv(t *testing.T) {
	SetColorForcing(false, false)
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestSwitchingAwayFromMonoRestoresColor(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() {
		SetTheme("classic")
		SetColorForcing(false, false)
	})

	SetTheme("mono")
	assert.Equal(t, "x", C(fgRed, "x"))

	SetTheme("neon")
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
}
