package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/r3labs/sse/v2"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

const maxEventSize = 4 << 20

// Subscribe opens the server-sent-events stream. The returned channel closes
// when ctx is done or the server ends the stream. The stream is not
// reconnected; callers subscribe again.
func (c *Client) Subscribe(ctx context.Context) (<-chan gateway.Event, error) {
	connected := make(chan error, 1)
	client := sse.NewClient(c.baseURL+"/api/"+PathRealtime, sse.ClientMaxBufferSize(maxEventSize))
	client.Connection = c.stream
	client.ReconnectStrategy = &backoff.StopBackOff{}
	client.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
		if resp.StatusCode == http.StatusOK {
			connected <- nil
			return nil
		}
		resp.Body.Close()
		err := &gateway.Error{
			Op:     "subscribe",
			Entity: "realtime",
			Kind:   gateway.KindForStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
		connected <- err
		return err
	}

	out := make(chan gateway.Event, 16)
	done := make(chan error, 1)
	go func() {
		defer close(out)
		err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			ev, ok := decodeEvent(msg, c.logger)
			if !ok {
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			c.logger.Warn("realtime stream closed", slog.String("error", err.Error()))
		}
		done <- err
	}()

	select {
	case err := <-connected:
		if err != nil {
			return nil, err
		}
		return out, nil
	case err := <-done:
		// The stream ended before or right after the response arrived.
		select {
		case cerr := <-connected:
			if cerr != nil {
				return nil, cerr
			}
			return out, nil
		default:
		}
		return nil, &gateway.Error{Op: "subscribe", Entity: "realtime", Kind: gateway.KindTransient, Err: err}
	}
}

// decodeEvent turns one stream event into a gateway event. The event name
// stands in for a missing entity_type; events without data are keepalives.
func decodeEvent(msg *sse.Event, logger *slog.Logger) (gateway.Event, bool) {
	if msg == nil || len(msg.Data) == 0 {
		return gateway.Event{}, false
	}
	var ev gateway.Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Warn("dropping malformed realtime event", slog.String("event", string(msg.Event)), slog.String("error", err.Error()))
		return gateway.Event{}, false
	}
	if ev.EntityType == "" {
		ev.EntityType = models.EntityType(msg.Event)
	}
	return ev, true
}
