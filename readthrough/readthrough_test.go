package readthrough

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	rt := New(t.TempDir(), "artist-", 0)

	_, err := rt.Get("ado")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, rt.Set("ado", []byte(`{"name":"Ado"}`)))
	bs, err := rt.Get("ado")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ado"}`, string(bs))

	_, err = rt.Get("yoasobi")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestExpiry(t *testing.T) {
	rt := New(t.TempDir(), "artist-", time.Hour)
	require.NoError(t, rt.Set("ado", []byte("x")))

	_, err := rt.Get("ado")
	require.NoError(t, err)

	rt.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = rt.Get("ado")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestConcurrentSetsOfOneKey(t *testing.T) {
	dir := t.TempDir()
	rt := New(dir, "artist-", 0)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- rt.Set("ado", []byte(fmt.Sprintf(`{"n":%d}`, i)))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	bs, err := rt.Get("ado")
	require.NoError(t, err)
	assert.Contains(t, string(bs), `{"n":`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
