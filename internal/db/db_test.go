package db

import (
	"testing"
	"time"
)

func TestNew_UnreachableServer(t *testing.T) {
	// port 0 is never listening, so the connectivity check must fail fast
	db, err := New("user:pass@tcp(127.0.0.1:0)/videos", 1, 1, time.Second)
	if err == nil {
		if db != nil {
			_ = db.Close()
		}
		t.Fatal("expected a connection error, got nil")
	}
}

func TestNew_MalformedDSN(t *testing.T) {
	if _, err := New("not-a-dsn", 1, 1, time.Second); err == nil {
		t.Fatal("expected an error for a malformed DSN")
	}
}
