package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/testutil"
)

func TestBroadcaster_PublishEncodesEvent(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("round-1")
	defer manager.RemoveHub("round-1")
	client := NewClient(hub, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.Publish(context.Background(), model.Event{
		Type:     model.EventWordFound,
		RoundID:  "round-1",
		PlayerID: "player1",
		Payload: model.WordFoundPayload{
			Word:         "CAT",
			CorrectCount: 1,
			TotalWords:   10,
		},
	})

	select {
	case msg := <-client.send:
		text := string(msg)
		if !strings.HasPrefix(text, "event: word_found\ndata: ") {
			t.Fatalf("unexpected message %q", text)
		}
		data := strings.TrimSuffix(strings.TrimPrefix(text, "event: word_found\ndata: "), "\n\n")
		var decoded struct {
			Type    string `json:"type"`
			Payload struct {
				Word         string `json:"word"`
				CorrectCount int    `json:"correct_count"`
			} `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &decoded); err != nil {
			t.Fatalf("decode %q: %v", data, err)
		}
		if decoded.Payload.Word != "CAT" || decoded.Payload.CorrectCount != 1 {
			t.Errorf("unexpected payload %+v", decoded.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive event")
	}
}

func TestBroadcaster_PublishWithoutHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub for the round: nothing to do, must not create one
	broadcaster.Publish(context.Background(), model.Event{Type: model.EventTick, RoundID: "round-1"})

	if manager.GetHub("round-1") != nil {
		t.Error("Publish should not create hubs")
	}
}

func TestServeSSE_StreamsEvents(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("round-1")
	defer manager.RemoveHub("round-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, "player1")
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if line == "\n" {
				return strings.Join(lines, "")
			}
			lines = append(lines, line)
		}
	}

	if got := readEvent(); !strings.HasPrefix(got, "event: connected\n") {
		t.Fatalf("first event = %q", got)
	}

	// Wait for the client to be registered before broadcasting
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	hub.BroadcastEvent("tick", `{"remaining_seconds":9}`)
	if got := readEvent(); got != "event: tick\ndata: {\"remaining_seconds\":9}\n" {
		t.Errorf("second event = %q", got)
	}
}
