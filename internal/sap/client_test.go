package sap

import (
	"errors"
	"testing"
	"time"

	"github.com/mj1618/sapgui-cli/internal/scripting/scriptingtest"
)

// testClient wraps a fake engine with fast poll settings.
func testClient(engine *scriptingtest.Engine) *Client {
	c := NewClient(engine)
	c.SessionTimeout = time.Second
	c.PollInterval = time.Millisecond
	return c
}

func TestNewSession_FreshConnectionReturnsMaster(t *testing.T) {
	engine := &scriptingtest.Engine{}
	client := testClient(engine)

	sess, err := client.NewSession("PRD")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if client.ConnectionReused() {
		t.Error("fresh connection reported as reused")
	}
	if engine.OpenedCount != 1 {
		t.Errorf("opened %d connections, want 1", engine.OpenedCount)
	}

	// The master session is handed back directly; no extra session is
	// requested on a connection we just opened.
	id, _ := sess.ID()
	if id != "/app/con[0]/ses[0]" {
		t.Errorf("session id = %q", id)
	}
	if calls := engine.Conns[0].Sessions[0].CreateCalls; calls != 0 {
		t.Errorf("create called %d times on fresh connection", calls)
	}
}

func TestNewSession_ReusesConnectionByDescription(t *testing.T) {
	master := scriptingtest.NewSession("/app/con[0]/ses[0]")
	conn := &scriptingtest.Connection{Desc: "PRD", Sessions: []*scriptingtest.Session{master}}
	master.OnCreate = func() {
		conn.Pending = []*scriptingtest.Session{scriptingtest.NewSession("/app/con[0]/ses[1]")}
		conn.PendingPolls = 0
	}
	engine := &scriptingtest.Engine{Conns: []*scriptingtest.Connection{conn}}
	client := testClient(engine)

	sess, err := client.NewSession("PRD")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if !client.ConnectionReused() {
		t.Error("existing connection not reported as reused")
	}
	if engine.OpenedCount != 0 {
		t.Errorf("opened %d connections, want 0", engine.OpenedCount)
	}
	if master.CreateCalls != 1 {
		t.Errorf("create called %d times, want 1", master.CreateCalls)
	}

	id, _ := sess.ID()
	if id != "/app/con[0]/ses[1]" {
		t.Errorf("session id = %q, want the newly discovered session", id)
	}
}

func TestNewSession_DiscoveryWaitsForPolls(t *testing.T) {
	master := scriptingtest.NewSession("/app/con[0]/ses[0]")
	conn := &scriptingtest.Connection{Desc: "PRD", Sessions: []*scriptingtest.Session{master}}
	master.OnCreate = func() {
		// The new window takes a few polls to show up in the child list.
		conn.Pending = []*scriptingtest.Session{scriptingtest.NewSession("/app/con[0]/ses[1]")}
		conn.PendingPolls = 3
	}
	engine := &scriptingtest.Engine{Conns: []*scriptingtest.Connection{conn}}
	client := testClient(engine)

	sess, err := client.NewSession("PRD")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	id, _ := sess.ID()
	if id != "/app/con[0]/ses[1]" {
		t.Errorf("session id = %q", id)
	}
}

func TestNewSession_Timeout(t *testing.T) {
	master := scriptingtest.NewSession("/app/con[0]/ses[0]")
	conn := &scriptingtest.Connection{Desc: "PRD", Sessions: []*scriptingtest.Session{master}}
	// CreateSession succeeds but the new session never appears.
	engine := &scriptingtest.Engine{Conns: []*scriptingtest.Connection{conn}}
	client := testClient(engine)
	client.SessionTimeout = 20 * time.Millisecond

	_, err := client.NewSession("PRD")
	if !errors.Is(err, ErrSessionTimeout) {
		t.Fatalf("expected ErrSessionTimeout, got %v", err)
	}
}

func TestNewSession_SecondCallOnSameServerCreatesSession(t *testing.T) {
	engine := &scriptingtest.Engine{}
	client := testClient(engine)

	if _, err := client.NewSession("PRD"); err != nil {
		t.Fatalf("first NewSession failed: %v", err)
	}

	conn := engine.Conns[0]
	master := conn.Sessions[0]
	master.OnCreate = func() {
		conn.Pending = []*scriptingtest.Session{scriptingtest.NewSession("/app/con[0]/ses[1]")}
	}

	sess, err := client.NewSession("PRD")
	if err != nil {
		t.Fatalf("second NewSession failed: %v", err)
	}
	if master.CreateCalls != 1 {
		t.Errorf("create called %d times, want 1", master.CreateCalls)
	}
	id, _ := sess.ID()
	if id != "/app/con[0]/ses[1]" {
		t.Errorf("session id = %q", id)
	}
}

func TestClientClose(t *testing.T) {
	engine := &scriptingtest.Engine{}
	client := testClient(engine)

	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !engine.Closed {
		t.Error("engine handle not released")
	}
	// Closing twice is safe.
	if err := client.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
