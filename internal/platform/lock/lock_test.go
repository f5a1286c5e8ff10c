package lock

import (
	"context"
	"testing"
)

func TestNilGuardGrants(t *testing.T) {
	var g *Guard
	release, ok := g.Acquire(context.Background(), "checkin:1")
	if !ok {
		t.Fatal("nil guard must grant")
	}
	release()

	if err := g.Ping(context.Background()); err != nil {
		t.Fatalf("nil guard ping: %v", err)
	}
}

func TestGuardWithoutClientGrants(t *testing.T) {
	g := NewGuard(nil, 0)
	if g.ttl <= 0 {
		t.Fatal("expected default ttl")
	}
	_, ok := g.Acquire(context.Background(), "payroll:1")
	if !ok {
		t.Fatal("guard without client must grant")
	}
}

func TestConnectEmptyURL(t *testing.T) {
	client, err := Connect(context.Background(), "")
	if err != nil || client != nil {
		t.Fatalf("expected nil client, got %v %v", client, err)
	}
}
