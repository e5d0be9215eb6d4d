package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	HttpKey   = "defaulthttpkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string
}

func NewTestClient(t *testing.T) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())

	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	socket := client.NewSocket()
	if err := socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}

	return &TestClient{
		Client:  client,
		Session: session,
		Socket:  socket,
		UserID:  session.UserId,
	}
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

// QuickMatch calls the quick_match RPC and joins the returned match.
func (tc *TestClient) QuickMatch(t *testing.T) string {
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "quick_match", `{"tier":"casual"}`)
	if err != nil {
		t.Fatalf("RPC quick_match failed: %v", err)
	}

	var res struct {
		MatchID string `json:"match_id"`
		IsNew   bool   `json:"is_new"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &res); err != nil {
		t.Fatalf("Failed to decode quick_match response: %v", err)
	}
	if res.MatchID == "" {
		t.Fatalf("RPC quick_match returned empty match id")
	}

	if _, err := tc.Socket.JoinMatch(context.Background(), nil, res.MatchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", res.MatchID, err)
	}

	return res.MatchID
}

// WaitForMatchState blocks until the socket delivers a message with the
// given opcode, or fails the test on timeout.
func (tc *TestClient) WaitForMatchState(t *testing.T, opCode int64, timeout time.Duration) *rtapi.MatchData {
	ch := make(chan *rtapi.MatchData)

	originalHandler := tc.Socket.OnMatchData
	tc.Socket.OnMatchData = func(data *rtapi.MatchData) {
		if data.OpCode == opCode {
			ch <- data
		}
		if originalHandler != nil {
			originalHandler(data)
		}
	}

	select {
	case data := <-ch:
		return data
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for OpCode %d", opCode)
		return nil
	}
}

// WaitForTableEvent waits for a table event of the given kind and returns
// its decoded payload.
func (tc *TestClient) WaitForTableEvent(t *testing.T, kind string, timeout time.Duration) json.RawMessage {
	const opTableEvent = 102

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("Timeout waiting for table event %q", kind)
			return nil
		}

		data := tc.WaitForMatchState(t, opTableEvent, remaining)

		var ev struct {
			Kind    string          `json:"kind"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(data.Data, &ev); err != nil {
			t.Fatalf("Failed to decode table event: %v", err)
		}
		if ev.Kind == kind {
			return ev.Payload
		}
	}
}
