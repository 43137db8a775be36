package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lyrebird/internal/config"
	"lyrebird/internal/identity"
	"lyrebird/internal/logging"
	"lyrebird/internal/provider"
)

func gatewayConfig(t *testing.T, kind, baseURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Library.Root = "/music"
	cfg.Provider.Kind = kind
	cfg.Provider.RetryAttempts = 2
	switch kind {
	case config.ProviderTuneHub:
		cfg.Provider.TuneHub.BaseURL = baseURL
	case config.ProviderLrcAPI:
		cfg.Provider.LrcAPI.BaseURL = baseURL
	}
	return &cfg
}

func TestNewRejectsUnknownKind(t *testing.T) {
	cfg := gatewayConfig(t, config.ProviderTuneHub, "https://example.invalid")
	cfg.Provider.Kind = "mystery"
	if _, err := provider.New(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider kind")
	}
}

func TestTuneHubGatewaySearchAppliesScoring(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[
			{"id":"wrong","name":"Another Song","artist":"Nobody","platform":"tencent","lrc":"","pic":""},
			{"id":"right","name":"Blue Storm","artist":"Jay","platform":"netease","lrc":"http://x/lrc","pic":"http://x/pic"}
		]}}`))
	}))
	t.Cleanup(server.Close)

	gateway, err := provider.New(gatewayConfig(t, config.ProviderTuneHub, server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if gateway.Name() != config.ProviderTuneHub {
		t.Fatalf("name = %q", gateway.Name())
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if match == nil || match.ID != "right" {
		t.Fatalf("match = %+v, want scored winner", match)
	}
	if match.LyricsURL != "http://x/lrc" || match.CoverURL != "http://x/pic" {
		t.Fatalf("fetch handles not carried: %+v", match)
	}
}

func TestTuneHubGatewaySearchMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[]}}`))
	}))
	t.Cleanup(server.Close)

	gateway, err := provider.New(gatewayConfig(t, config.ProviderTuneHub, server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm"})
	if err != nil {
		t.Fatalf("miss should not be an error, got %v", err)
	}
	if match != nil {
		t.Fatalf("expected nil match, got %+v", match)
	}
}

func TestTuneHubGatewayRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[{"id":"1","name":"Blue Storm","artist":"Jay","platform":"tencent"}]}}`))
	}))
	t.Cleanup(server.Close)

	gateway, err := provider.New(gatewayConfig(t, config.ProviderTuneHub, server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm"})
	if err != nil {
		t.Fatalf("Search returned error after retry: %v", err)
	}
	if match == nil {
		t.Fatal("expected match after retry")
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestLrcAPIGatewaySyntheticSearch(t *testing.T) {
	gateway, err := provider.New(gatewayConfig(t, config.ProviderLrcAPI, "https://example.invalid"), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if gateway.Name() != config.ProviderLrcAPI {
		t.Fatalf("name = %q", gateway.Name())
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm", Album: "Fantasy"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if match == nil || match.Title != "Blue Storm" || match.Artist != "Jay" || match.Album != "Fantasy" {
		t.Fatalf("match = %+v", match)
	}

	// No title means nothing to resolve against the parameter endpoints.
	match, err = gateway.Search(context.Background(), identity.Identity{Artist: "Jay"})
	if err != nil || match != nil {
		t.Fatalf("expected miss for empty title, got %+v / %v", match, err)
	}
}

func TestLrcAPIGatewayFetchesUseIdentityParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lyrics":
			_, _ = w.Write([]byte("[00:01.00]La la"))
		case "/cover":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	gateway, err := provider.New(gatewayConfig(t, config.ProviderLrcAPI, server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm", Album: "Fantasy"})
	if err != nil || match == nil {
		t.Fatalf("Search = %+v / %v", match, err)
	}

	text, err := gateway.FetchLyrics(context.Background(), match)
	if err != nil || text != "[00:01.00]La la" {
		t.Fatalf("FetchLyrics = %q / %v", text, err)
	}

	data, err := gateway.FetchCover(context.Background(), match)
	if err != nil || len(data) != 3 {
		t.Fatalf("FetchCover = %v / %v", data, err)
	}
}

func TestGatewayRequestTimeoutUsesSeconds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Long enough that a timeout misconfigured in nanoseconds would
		// cut the request off, short enough to keep the test quick.
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"results":[
			{"id":"slow","name":"Blue Storm","artist":"Jay","platform":"tencent","lrc":"","pic":""}
		]}}`))
	}))
	t.Cleanup(server.Close)

	cfg := gatewayConfig(t, config.ProviderTuneHub, server.URL)
	cfg.Provider.RequestTimeout = 1
	cfg.Provider.RetryAttempts = 1

	gateway, err := provider.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	match, err := gateway.Search(context.Background(), identity.Identity{Artist: "Jay", Title: "Blue Storm"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if match == nil || match.ID != "slow" {
		t.Fatalf("match = %+v", match)
	}
}
