package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

func serveStream(t *testing.T, status int, body string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/"+PathRealtime {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return New(ts.URL, WithHTTPClient(ts.Client()))
}

func TestSubscribeParsesFraming(t *testing.T) {
	stream := strings.Join([]string{
		": keepalive",
		"",
		"event: TeamMember",
		`data: {"record":{"id":"m1",`,
		`data: "name":"Ana"}}`,
		"",
		"event: TeamMember",
		"data: not json",
		"",
		`data:{"entity_type":"TeamMember","record":{"id":"m2","name":"Bo"}}`,
		"",
		"",
	}, "\n")
	c := serveStream(t, http.StatusOK, stream)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := c.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	var got []gateway.Event
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].EntityType != models.EntityTeamMember {
		t.Fatalf("event name not used as entity type: %+v", got[0])
	}
	m, err := gateway.DecodeTeamMember(got[0].Record)
	if err != nil || m.Name != "Ana" {
		t.Fatalf("multi-line data not joined: %+v, %v", m, err)
	}
	m, err = gateway.DecodeTeamMember(got[1].Record)
	if err != nil || m.ID != "m2" {
		t.Fatalf("unexpected second event: %+v, %v", m, err)
	}
}

func TestSubscribeRejectedStatus(t *testing.T) {
	c := serveStream(t, http.StatusServiceUnavailable, "")
	_, err := c.Subscribe(context.Background())
	if gateway.KindOf(err) != gateway.KindTransient {
		t.Fatalf("expected transient error, got %v", err)
	}
	if !gateway.IsRetryable(err) {
		t.Fatalf("503 should be retryable: %v", err)
	}
}

func TestDecodeEventSkipsKeepalive(t *testing.T) {
	if _, ok := decodeEvent(&sse.Event{Event: []byte("TeamMember")}, util.DiscardLogger()); ok {
		t.Fatalf("event without data should be skipped")
	}
	ev, ok := decodeEvent(&sse.Event{Event: []byte("Sprint"), Data: []byte(`{"record":{"id":"s1"}}`)}, util.DiscardLogger())
	if !ok || ev.EntityType != models.EntitySprint {
		t.Fatalf("unexpected event: %+v %v", ev, ok)
	}
}
