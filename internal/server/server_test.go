package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/gradgen"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{BaseURL: "https://example.com/editor"}, log.New(io.Discard))
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func tokenFor(t *testing.T, s *gradgen.State) string {
	t.Helper()
	token, err := gradgen.Encode(s)
	require.NoError(t, err)
	return token
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	t.Run("default gradient", func(t *testing.T) {
		rec := get(t, s, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "linear-gradient(90deg, rgba(79, 70, 229, 1.00) 0%, rgba(236, 72, 153, 1.00) 100%)")
		assert.Contains(t, body, `name="op" value="angle"`)
		assert.NotContains(t, body, `class="notice`)
	})

	t.Run("loaded token", func(t *testing.T) {
		state := gradgen.NewState()
		state.SetKind(gradgen.Radial)
		rec := get(t, s, "/?gradient="+url.QueryEscape(tokenFor(t, state)))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "radial-gradient(circle,")
		assert.Contains(t, body, gradgen.NoticeLoadedFromURL.Message)
		// No angle control for radial gradients
		assert.NotContains(t, body, `name="op" value="angle"`)
	})

	t.Run("empty notice suppresses load notice", func(t *testing.T) {
		rec := get(t, s, "/?notice=&gradient="+url.QueryEscape(tokenFor(t, gradgen.NewState())))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), gradgen.NoticeLoadedFromURL.Message)
	})

	t.Run("malformed token redirects", func(t *testing.T) {
		rec := get(t, s, "/?gradient=%25%25%25")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?notice=invalid-url", rec.Header().Get("Location"))
	})

	t.Run("single stop token keeps url and warns", func(t *testing.T) {
		token := base64.StdEncoding.EncodeToString([]byte(`{"colors":[{"color":"#111111"}]}`))
		rec := get(t, s, "/?gradient="+url.QueryEscape(token))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, gradgen.NoticeInvalidURL.Message)
		assert.Contains(t, body, "linear-gradient(90deg, rgba(79, 70, 229, 1.00) 0%")
	})

	t.Run("invalid url notice", func(t *testing.T) {
		rec := get(t, s, "/?notice=invalid-url")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, gradgen.NoticeInvalidURL.Message)
		assert.Contains(t, body, `class="notice error"`)
	})
}

func TestAction(t *testing.T) {
	s := newTestServer(t)

	follow := func(t *testing.T, rec *httptest.ResponseRecorder) (*gradgen.State, string) {
		t.Helper()
		require.Equal(t, http.StatusSeeOther, rec.Code)
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		state, err := gradgen.Decode(loc.Query().Get("gradient"))
		require.NoError(t, err)
		require.True(t, loc.Query().Has("notice"))
		return state, loc.Query().Get("notice")
	}

	t.Run("angle is clamped", func(t *testing.T) {
		state, notice := follow(t, get(t, s, "/action?op=angle&value=999"))
		assert.Equal(t, 360, state.Angle())
		assert.Empty(t, notice)
	})

	t.Run("add stop", func(t *testing.T) {
		state, notice := follow(t, get(t, s, "/action?op=add"))
		assert.Equal(t, 3, state.Len())
		assert.Equal(t, gradgen.NoticeStopAdded.Key, notice)
	})

	t.Run("remove at minimum", func(t *testing.T) {
		state, notice := follow(t, get(t, s, "/action?op=remove&id=1"))
		assert.Equal(t, 2, state.Len())
		assert.Equal(t, gradgen.NoticeMinimumStops.Key, notice)
	})

	t.Run("keeps incoming gradient", func(t *testing.T) {
		in := gradgen.NewState()
		in.SetKind(gradgen.Conic)
		state, _ := follow(t, get(t, s, "/action?op=opacity&value=40&gradient="+url.QueryEscape(tokenFor(t, in))))
		assert.Equal(t, gradgen.Conic, state.Kind())
		assert.Equal(t, 40, state.Opacity())
	})

	t.Run("unknown op", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/action?op=explode").Code)
	})

	t.Run("bad id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/action?op=remove&id=x").Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := get(t, s, "/action?op=add&gradient=%25%25")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?notice=invalid-url", rec.Header().Get("Location"))
	})
}

func TestAPI(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/gradient")
	require.Equal(t, http.StatusOK, rec.Code)
	var out gradgen.JSONOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "linear-gradient", out.Type)
	assert.Len(t, out.Stops, 2)
	assert.Contains(t, out.ShareURL, "https://example.com/editor?gradient=")

	rec = get(t, s, "/api/gradient?gradient=bm90IGpzb24")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
