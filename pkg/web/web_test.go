package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/page"
	"github.com/rubiojr/apodview/pkg/source"
)

var testRecords = source.Static{
	{Title: "Horsehead Nebula", Date: "2023-01-02", MediaType: "image", URL: "https://x/horse.jpg", HDURL: "https://x/horse_hd.jpg", Explanation: "Dark dust.", Copyright: "Jane Doe"},
	{Title: "Old <b>Moon</b>", Date: "2020-01-01", MediaType: "video", URL: "https://www.youtube.com/embed/moon"},
}

func newTestServer(t *testing.T, src source.Source) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(Options{Source: src, Locale: "en-US"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestNewServerRequiresSource(t *testing.T) {
	if _, err := NewServer(Options{}); err == nil {
		t.Fatal("expected error without source")
	}
}

func TestHandlePage(t *testing.T) {
	_, ts := newTestServer(t, testRecords)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := readAll(t, resp)
	for _, want := range []string{
		"Fetch Space Images",
		`id="gallery"`,
		`aria-hidden="true"`,
		"/static/app.js",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(body, "Press &#34;Fetch Space Images&#34;") {
		t.Errorf("page missing the initial placeholder")
	}
}

func TestUnknownPath(t *testing.T) {
	_, ts := newTestServer(t, testRecords)
	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestStaticAssets(t *testing.T) {
	_, ts := newTestServer(t, testRecords)

	req, _ := http.NewRequest("GET", ts.URL+"/static/style.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if enc := resp.Header.Get("Content-Encoding"); enc != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", enc)
	}

	resp, err = http.Get(ts.URL + "/static/missing.js")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestHealthAndRecords(t *testing.T) {
	_, ts := newTestServer(t, testRecords)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if health["status"] != "ok" || health["sessions"] != float64(0) {
		t.Fatalf("health = %v", health)
	}

	resp, err = http.Get(ts.URL + "/api/records")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list struct {
		Records []apod.Record `json:"records"`
		Count   int           `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 2 || list.Records[0].Title != "Horsehead Nebula" {
		t.Fatalf("records = %+v", list)
	}
}

func TestClientMessageEvent(t *testing.T) {
	tests := []struct {
		msg  ClientMessage
		want page.Event
	}{
		{ClientMessage{Type: "fetch"}, page.FetchRequested{}},
		{ClientMessage{Type: "card", Index: 2}, page.CardActivated{Index: 2}},
		{ClientMessage{Type: "card_key", Index: 1, Key: "Enter"}, page.CardKeyPressed{Index: 1, Key: "Enter"}},
		{ClientMessage{Type: "overlay_click", Closable: true}, page.OverlayClicked{Closable: true}},
		{ClientMessage{Type: "close"}, page.CloseRequested{}},
		{ClientMessage{Type: "key", Key: "Escape"}, page.KeyPressed{Key: "Escape"}},
	}
	for _, tt := range tests {
		got, err := tt.msg.Event()
		if err != nil {
			t.Fatalf("%s: %v", tt.msg.Type, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.msg.Type, got, tt.want)
		}
	}
	if _, err := (ClientMessage{Type: "bogus"}).Event(); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestRenderRegionsEscapes(t *testing.T) {
	views, err := NewViews()
	if err != nil {
		t.Fatal(err)
	}
	grid := gallery.NewRenderer(nil, nil).Render([]apod.Record(testRecords))
	out, err := views.RenderRegions(context.Background(), page.View{Gallery: grid}, []page.Region{page.RegionGallery})
	if err != nil {
		t.Fatal(err)
	}
	html := out[string(page.RegionGallery)]
	if strings.Contains(html, "<b>Moon</b>") {
		t.Fatal("title was not escaped")
	}
	if !strings.Contains(html, `data-index="1"`) || !strings.Contains(html, "play-overlay") {
		t.Fatalf("unexpected gallery html: %s", html)
	}
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("one\n\n  two \r\n\r\n\n")
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("paragraphs = %q", got)
	}
}

func wsDial(t *testing.T, ts *httptest.Server) (*websocket.Conn, ServerMessage) {
	t.Helper()
	u, _ := url.Parse(ts.URL)
	u.Scheme = "ws"
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	msg := readMsg(t, conn)
	if msg.Type != "init" || msg.Session == "" {
		t.Fatalf("expected init message, got %+v", msg)
	}
	return conn, msg
}

func readMsg(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ws: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write ws: %v", err)
	}
}

func TestWebSocketSession(t *testing.T) {
	srv, ts := newTestServer(t, testRecords)
	conn, _ := wsDial(t, ts)

	first := readMsg(t, conn)
	if first.Type != "render" || len(first.Regions) != len(page.AllRegions) {
		t.Fatalf("expected full render, got %+v", first)
	}
	if srv.Sessions() != 1 {
		t.Fatalf("sessions = %d", srv.Sessions())
	}

	send(t, conn, ClientMessage{Type: "fetch"})
	busy := readMsg(t, conn)
	if !strings.Contains(busy.Regions["controls"], "Loading...") || !strings.Contains(busy.Regions["controls"], "disabled") {
		t.Fatalf("expected busy controls, got %+v", busy.Regions)
	}
	loaded := readMsg(t, conn)
	if !strings.Contains(loaded.Regions["controls"], "Fetch Space Images") {
		t.Fatalf("controls not restored: %q", loaded.Regions["controls"])
	}
	if !strings.Contains(loaded.Regions["gallery"], "Horsehead Nebula") {
		t.Fatalf("gallery not rendered: %q", loaded.Regions["gallery"])
	}

	send(t, conn, ClientMessage{Type: "card_key", Index: 0, Key: "Enter"})
	opened := readMsg(t, conn)
	overlay := opened.Regions["overlay"]
	for _, want := range []string{`aria-hidden="false"`, "Horsehead Nebula", "horse_hd.jpg", "Credit: Jane Doe", "Dark dust."} {
		if !strings.Contains(overlay, want) {
			t.Errorf("overlay missing %q: %s", want, overlay)
		}
	}

	send(t, conn, ClientMessage{Type: "key", Key: "Escape"})
	closed := readMsg(t, conn)
	if !strings.Contains(closed.Regions["overlay"], `aria-hidden="true"`) {
		t.Fatalf("overlay not closed: %s", closed.Regions["overlay"])
	}

	send(t, conn, ClientMessage{Type: "card", Index: 1})
	video := readMsg(t, conn)
	if !strings.Contains(video.Regions["overlay"], "<iframe") || !strings.Contains(video.Regions["overlay"], "allowfullscreen") {
		t.Fatalf("expected embedded video: %s", video.Regions["overlay"])
	}
}

func TestWebSocketSourceChange(t *testing.T) {
	srv, ts := newTestServer(t, source.Static{})
	conn, _ := wsDial(t, ts)
	readMsg(t, conn)

	// Wait for the session to register with the hub.
	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub().Size() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	srv.SetSource(testRecords)

	// The source switch is applied by the session goroutine; retry the
	// fetch until it picks up the new records.
	for attempt := 0; attempt < 20; attempt++ {
		send(t, conn, ClientMessage{Type: "fetch"})
		readMsg(t, conn)
		loaded := readMsg(t, conn)
		if strings.Contains(loaded.Regions["gallery"], "Horsehead Nebula") {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("session never used the new source")
}

func TestWebSocketShutdownNotice(t *testing.T) {
	srv, ts := newTestServer(t, testRecords)
	conn, _ := wsDial(t, ts)
	readMsg(t, conn)

	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub().Size() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	srv.NotifyShutdown()

	msg := readMsg(t, conn)
	if msg.Type != "notice" {
		t.Fatalf("expected notice, got %+v", msg)
	}
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return sb.String()
}
