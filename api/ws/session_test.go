package ws

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docview-engine/core/domain"
	"docview-engine/core/registry"
	"docview-engine/infrastructure/provider/snapshot"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

// mockEngine records calls and exposes the registered listener
type mockEngine struct {
	mu         sync.Mutex
	scrolls    []float64
	pageCounts map[domain.DocumentKey]int
	listener   registry.ListenerFunc
	registered chan struct{}
	removed    bool

	scrollToPageResult bool
	lastScrollToPage   struct {
		page   int
		key    domain.DocumentKey
		source domain.Source
	}
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		pageCounts:         make(map[domain.DocumentKey]int),
		registered:         make(chan struct{}, 1),
		scrollToPageResult: true,
	}
}

func (m *mockEngine) HandleScrollEvent(offset float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrolls = append(m.scrolls, offset)
}

func (m *mockEngine) ScrollToPage(pageNumber int, key domain.DocumentKey, source domain.Source, opts *domain.ScrollOptions) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScrollToPage.page = pageNumber
	m.lastScrollToPage.key = key
	m.lastScrollToPage.source = source
	return m.scrollToPageResult
}

func (m *mockEngine) SetProgrammaticScroll(active bool) {}

func (m *mockEngine) RestorePosition(key domain.DocumentKey) bool {
	return false
}

func (m *mockEngine) SetPageCount(key domain.DocumentKey, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCounts[key] = count
}

func (m *mockEngine) AddListener(identifier string, key domain.DocumentKey, fn registry.ListenerFunc) {
	m.mu.Lock()
	m.listener = fn
	m.mu.Unlock()
	select {
	case m.registered <- struct{}{}:
	default:
	}
}

func (m *mockEngine) RemoveListener(identifier string, key domain.DocumentKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = true
}

func (m *mockEngine) scrollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scrolls)
}

func (m *mockEngine) fire(e registry.Event) {
	m.mu.Lock()
	fn := m.listener
	m.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

func dialSession(t *testing.T, engine *mockEngine) (*websocket.Conn, *snapshot.Provider, func()) {
	t.Helper()

	provider := snapshot.NewProvider()
	server := httptest.NewServer(Handler(engine, provider, nopLogger{}))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	// Wait until the session registered its listener
	select {
	case <-engine.registered:
	case <-time.After(time.Second):
		t.Fatal("session never registered a listener")
	}

	return conn, provider, func() {
		conn.Close()
		server.Close()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestSession_ScrollEventReachesEngine(t *testing.T) {
	engine := newMockEngine()
	conn, _, cleanup := dialSession(t, engine)
	defer cleanup()

	err := conn.WriteJSON(map[string]interface{}{"type": "scroll", "offset": 640.5})
	require.NoError(t, err)

	waitFor(t, func() bool { return engine.scrollCount() == 1 })

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Equal(t, 640.5, engine.scrolls[0])
}

func TestSession_GeometryUpdatesProvider(t *testing.T) {
	engine := newMockEngine()
	conn, provider, cleanup := dialSession(t, engine)
	defer cleanup()

	err := conn.WriteJSON(map[string]interface{}{
		"type": "geometry",
		"snapshot": map[string]interface{}{
			"viewport": map[string]interface{}{"scrollOffset": 0, "top": 0, "height": 800},
			"documents": []map[string]interface{}{
				{
					"key":  "doc-a",
					"rect": map[string]interface{}{"top": 0, "left": 0, "width": 600, "height": 1000},
					"pages": []map[string]interface{}{
						{"top": 0, "left": 0, "width": 600, "height": 1000},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	waitFor(t, func() bool { return provider.PageCount("doc-a") == 1 })
}

func TestSession_ScrollToPageReturnsResult(t *testing.T) {
	engine := newMockEngine()
	engine.scrollToPageResult = true
	conn, _, cleanup := dialSession(t, engine)
	defer cleanup()

	err := conn.WriteJSON(map[string]interface{}{
		"type":       "scrollToPage",
		"key":        "doc-a",
		"pageNumber": 3,
		"source":     "thumbnail-rail",
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "scrollToPageResult", msg["type"])
	assert.Equal(t, true, msg["success"])

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Equal(t, 3, engine.lastScrollToPage.page)
	assert.Equal(t, domain.DocumentKey("doc-a"), engine.lastScrollToPage.key)
	assert.Equal(t, domain.SourceThumbnailRail, engine.lastScrollToPage.source)
}

func TestSession_PageChangeNotificationReachesClient(t *testing.T) {
	engine := newMockEngine()
	conn, _, cleanup := dialSession(t, engine)
	defer cleanup()

	engine.fire(registry.Event{PageChange: &domain.PageChange{
		Key:        "doc-b",
		PageNumber: 5,
		Source:     domain.SourceViewportScroll,
	}})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "pageChange", msg["type"])
	change := msg["pageChange"].(map[string]interface{})
	assert.Equal(t, "doc-b", change["documentKey"])
	assert.Equal(t, float64(5), change["pageNumber"])
}

func TestSession_EffectReachesClient(t *testing.T) {
	engine := newMockEngine()
	conn, provider, cleanup := dialSession(t, engine)
	defer cleanup()

	provider.Apply(snapshot.Snapshot{
		Viewport: domain.ViewportMetrics{Height: 800},
		Documents: []snapshot.DocumentSnapshot{
			{Key: "doc-a", Pages: []domain.Rect{{Height: 1000, Width: 600}}},
		},
	})

	provider.ScrollTo(250, domain.ScrollSmooth)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "effect", msg["type"])
	effect := msg["effect"].(map[string]interface{})
	assert.Equal(t, "scroll", effect["type"])
	assert.Equal(t, float64(250), effect["offset"])
}

func TestSession_ReconnectKeepsEffectsFlowingToNewSession(t *testing.T) {
	engine := newMockEngine()
	provider := snapshot.NewProvider()
	server := httptest.NewServer(Handler(engine, provider, nopLogger{}))
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	select {
	case <-engine.registered:
	case <-time.After(time.Second):
		t.Fatal("first session never registered")
	}

	// The replacement connects before the old connection is torn down.
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	select {
	case <-engine.registered:
	case <-time.After(time.Second):
		t.Fatal("second session never registered")
	}

	// The old session's teardown runs after the new sink is installed.
	first.Close()
	waitFor(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.removed
	})

	provider.ScrollTo(250, domain.ScrollSmooth)

	second.SetReadDeadline(time.Now().Add(time.Second))
	var msg map[string]interface{}
	require.NoError(t, second.ReadJSON(&msg))

	assert.Equal(t, "effect", msg["type"])
	effect := msg["effect"].(map[string]interface{})
	assert.Equal(t, float64(250), effect["offset"])
}

func TestSession_DisconnectRemovesListener(t *testing.T) {
	engine := newMockEngine()
	conn, _, cleanup := dialSession(t, engine)
	defer cleanup()

	conn.Close()

	waitFor(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.removed
	})
}

func TestSession_MalformedMessageIsIgnored(t *testing.T) {
	engine := newMockEngine()
	conn, _, cleanup := dialSession(t, engine)
	defer cleanup()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "scroll", "offset": 10}))

	// Session survives the malformed message and still processes the next one
	waitFor(t, func() bool { return engine.scrollCount() == 1 })
}
