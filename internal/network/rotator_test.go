package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	rotator, err := NewRotator([]string{"http://p1:8080", "http://p2:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator: %v", err)
	}

	first, _ := rotator.Next()
	second, _ := rotator.Next()
	third, _ := rotator.Next()

	if first.Host != "p1:8080" || second.Host != "p2:8080" || third.Host != "p1:8080" {
		t.Fatalf("unexpected rotation: %s, %s, %s", first, second, third)
	}
}

func TestRotatorSkipsBanned(t *testing.T) {
	rotator, err := NewRotator([]string{"http://p1:8080", "http://p2:8080"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator: %v", err)
	}

	first, _ := rotator.Next()
	rotator.Report(first)

	for i := 0; i < 3; i++ {
		proxy, err := rotator.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if proxy.Host == "p1:8080" {
			t.Fatal("banned proxy handed out")
		}
	}
}

func TestRotatorBanExpires(t *testing.T) {
	rotator, err := NewRotator([]string{"http://p1:8080"}, time.Millisecond)
	if err != nil {
		t.Fatalf("NewRotator: %v", err)
	}

	proxy, _ := rotator.Next()
	rotator.Report(proxy)
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatal("all proxies banned, Next should fail")
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := rotator.Next(); err != nil {
		t.Fatalf("ban should have expired: %v", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	rotator, err := NewRotator(nil, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator: %v", err)
	}
	if _, err := rotator.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("expected ErrNoProxies, got %v", err)
	}
}
