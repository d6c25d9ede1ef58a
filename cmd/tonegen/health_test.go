package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthCommand_OKAgainstRunningServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	addr := strings.TrimPrefix(ts.URL, "http://")

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"health", "--addr", addr})
	root.SetOut(&stdout)

	if err := root.Execute(); err != nil {
		t.Fatalf("health command failed: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "ok" {
		t.Fatalf("expected ok, got %q", stdout.String())
	}
}

func TestHealthCommand_FailsWhenNothingListens(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"health", "--addr", "127.0.0.1:1"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	if err := root.Execute(); err == nil {
		t.Fatal("expected error when no server is listening")
	}
}
