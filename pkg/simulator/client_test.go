package simulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/agentsim/thorgym/pkg/core"
)

// commandLog records the commands the fake simulator saw.
type commandLog struct {
	mu   sync.Mutex
	cmds []core.Command
}

func (l *commandLog) add(cmd core.Command) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cmds = append(l.cmds, cmd)
}

func (l *commandLog) all() []core.Command {
	l.mu.Lock()
	defer l.mu.Unlock()
	cmds := make([]core.Command, len(l.cmds))
	copy(cmds, l.cmds)
	return cmds
}

// startFakeSimulator serves a websocket endpoint that replies to every
// command with a canned event and records the commands it saw.
func startFakeSimulator(t *testing.T, frame string) (string, *commandLog) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	seen := &commandLog{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			var cmd core.Command
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			seen.add(cmd)
			reply := event{
				Frame: frame,
				Objects: []wireObject{
					{ObjectID: "Mug|1", ObjectType: "Mug", Name: "Mug_1", Visible: true, Distance: 1.0, Pickupable: true},
				},
			}
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), seen
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	frame := encodedFrame(t, 4, 4)

	t.Run("step round-trips a command", func(t *testing.T) {
		url, commands := startFakeSimulator(t, frame)
		client, err := Dial(ctx, url)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		t.Cleanup(func() { client.Close() })

		snap, err := client.Step(ctx, core.Command{Action: "MoveAhead"})
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if len(snap.Objects) != 1 || snap.Objects[0].ID != "Mug|1" {
			t.Errorf("snapshot objects = %+v", snap.Objects)
		}
		if got := commands.all(); len(got) != 1 || got[0].Action != "MoveAhead" {
			t.Errorf("server saw %+v", got)
		}
	})

	t.Run("reset sends the scene id", func(t *testing.T) {
		url, commands := startFakeSimulator(t, frame)
		client, err := Dial(ctx, url)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		t.Cleanup(func() { client.Close() })

		if _, err := client.Reset(ctx, "FloorPlan28"); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		if got := commands.all(); len(got) != 1 || got[0].Action != "Reset" || got[0].SceneID != "FloorPlan28" {
			t.Errorf("server saw %+v", got)
		}
	})

	t.Run("cancelled context aborts before sending", func(t *testing.T) {
		url, commands := startFakeSimulator(t, frame)
		client, err := Dial(ctx, url)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		t.Cleanup(func() { client.Close() })

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := client.Step(cancelled, core.Command{Action: "MoveAhead"}); err == nil {
			t.Error("expected error from cancelled context")
		}
		if got := commands.all(); len(got) != 0 {
			t.Errorf("command was sent despite cancelled context: %+v", got)
		}
	})

	t.Run("dial failure surfaces", func(t *testing.T) {
		if _, err := Dial(ctx, "ws://127.0.0.1:1/nope"); err == nil {
			t.Error("expected dial error")
		}
	})
}
