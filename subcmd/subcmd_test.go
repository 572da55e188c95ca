package subcmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgJoinsWords(t *testing.T) {
	sc := New("search", "look up an artist")
	sc.SetArg("query", "string", "artist name", true)
	add := sc.Bool("add", false, "track the result")

	require.NoError(t, sc.Parse([]string{"-add", "king", "gnu"}))
	assert.True(t, *add)
	query, err := sc.Arg()
	require.NoError(t, err)
	assert.Equal(t, "king gnu", query)
}

func TestMissingRequiredArg(t *testing.T) {
	var out bytes.Buffer
	sc := New("remove-event", "remove an event")
	sc.SetOutput(&out)
	sc.SetArg("id", "string", "event id", true)

	require.NoError(t, sc.Parse(nil))
	_, err := sc.Arg()
	assert.ErrorIs(t, err, ErrMissingArg)
	assert.Contains(t, out.String(), "oshinavi remove-event [flags] <id>")
}

func TestOptionalArg(t *testing.T) {
	var out bytes.Buffer
	sc := New("wallpaper", "print or set the wallpaper")
	sc.SetArg("url", "string", "new wallpaper url", false)

	require.NoError(t, sc.Parse(nil))
	value, err := sc.Arg()
	require.NoError(t, err)
	assert.Empty(t, value)

	sc.PrintUsage(&out)
	assert.Contains(t, out.String(), "oshinavi wallpaper [flags] [url]")
}
