package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTestNotifyDisabled(t *testing.T) {
	configPath := writeTestConfig(t)

	stdout, _, err := runCLI(t, configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, stdout, "Notifications disabled")
}

func TestTestNotifySendsToConfiguredTopic(t *testing.T) {
	var gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
	}))
	defer srv.Close()

	configPath := writeConfigFile(t, testConfig{ntfyTopic: srv.URL + "/scribe-test"})

	stdout, _, err := runCLI(t, configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, stdout, "Test notification sent")
	if gotTitle != "Scribe - Test" {
		t.Fatalf("title header = %q", gotTitle)
	}
}
