package browser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><div class="facultyInformation"><ul><li><h3>A. Sharma</h3></li></ul></div></body></html>`))
	}))
	defer srv.Close()

	b := NewStatic(Options{})
	defer b.Close()
	ctx := context.Background()

	_, err := b.Document(ctx)
	require.Error(t, err)

	require.NoError(t, b.Open(ctx, srv.URL+"/faculty"))
	require.Equal(t, srv.URL+"/faculty", b.URL())
	require.NoError(t, b.WaitFor(ctx, ".facultyInformation", time.Second))

	err = b.WaitFor(ctx, ".missing", time.Second)
	require.True(t, errors.Is(err, ErrNotRendered))

	doc, err := b.Document(ctx)
	require.NoError(t, err)
	require.Equal(t, "A. Sharma", doc.Find("h3").Text())
}

func TestNewFactory(t *testing.T) {
	f, err := NewFactory(KindStatic, Options{})
	require.NoError(t, err)
	b, err := f(context.Background())
	require.NoError(t, err)
	require.IsType(t, &Static{}, b)

	_, err = NewFactory("firefox", Options{})
	require.Error(t, err)
}
