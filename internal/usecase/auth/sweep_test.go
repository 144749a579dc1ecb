package auth

import (
	"context"
	"errors"
	"testing"
)

func TestSweepExpired_Success(t *testing.T) {
	refresh := &mockRefreshRepo{expiredDeleted: 3}
	access := &mockAccessRepo{expiredDeleted: 5}
	svc := NewSweeper(refresh, access)

	report, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RefreshDeleted != 3 || report.AccessDeleted != 5 {
		t.Errorf("report = %+v", report)
	}
}

func TestSweepExpired_RefreshError(t *testing.T) {
	refresh := &mockRefreshRepo{deleteErr: errors.New("db fail")}
	svc := NewSweeper(refresh, &mockAccessRepo{})

	if _, err := svc.SweepExpired(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}
