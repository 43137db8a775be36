package reconcile

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCoverCacheSingleFlight(t *testing.T) {
	cache := newCoverCache()
	want := []byte("jpeg-bytes")

	var fetches atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.get(context.Background(), "/music/Jay/Fantasy", func() ([]byte, error) {
				fetches.Add(1)
				close(started)
				<-release
				return want, nil
			})
			if err != nil {
				t.Errorf("get: %v", err)
			}
			results[i] = data
		}()
	}

	<-started
	close(release)
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("fetch invoked %d times, want 1", got)
	}
	for i, data := range results {
		if !bytes.Equal(data, want) {
			t.Fatalf("caller %d got %q, want %q", i, data, want)
		}
	}
}

func TestCoverCacheCachesFailure(t *testing.T) {
	cache := newCoverCache()
	wantErr := errors.New("upstream down")

	var fetches int
	for range 2 {
		_, err := cache.get(context.Background(), "/music/Jay/Fantasy", func() ([]byte, error) {
			fetches++
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want %v", err, wantErr)
		}
	}
	if fetches != 1 {
		t.Fatalf("fetch invoked %d times, want 1", fetches)
	}
}

func TestCoverCachePeek(t *testing.T) {
	cache := newCoverCache()

	if _, ok := cache.peek("/music/Jay/Fantasy"); ok {
		t.Fatal("peek reported an unfetched directory as settled")
	}

	want := []byte("jpeg-bytes")
	if _, err := cache.get(context.Background(), "/music/Jay/Fantasy", func() ([]byte, error) {
		return want, nil
	}); err != nil {
		t.Fatalf("get: %v", err)
	}

	data, ok := cache.peek("/music/Jay/Fantasy")
	if !ok || !bytes.Equal(data, want) {
		t.Fatalf("peek = (%q, %v), want (%q, true)", data, ok, want)
	}

	if _, err := cache.get(context.Background(), "/music/Jay/Other", func() ([]byte, error) {
		return nil, errors.New("nope")
	}); err == nil {
		t.Fatal("expected fetch error")
	}
	data, ok = cache.peek("/music/Jay/Other")
	if !ok || data != nil {
		t.Fatalf("failed fetch: peek = (%v, %v), want settled with nil data", data, ok)
	}
}

func TestCoverCacheGetUnblocksOnCancel(t *testing.T) {
	cache := newCoverCache()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		cache.get(context.Background(), "/music/dir", func() ([]byte, error) { //nolint:errcheck
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cache.get(ctx, "/music/dir", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	close(release)
}

func TestClaimWriteGrantsDirectoryOnce(t *testing.T) {
	cache := newCoverCache()
	if !cache.claimWrite("/music/Jay/Fantasy") {
		t.Fatal("first claim must succeed")
	}
	if cache.claimWrite("/music/Jay/Fantasy") {
		t.Fatal("second claim for the same directory must fail")
	}
	if !cache.claimWrite("/music/Jay/Eight Dimensions") {
		t.Fatal("claims are per directory")
	}
}

func TestReleaseWriteReturnsClaim(t *testing.T) {
	cache := newCoverCache()
	if !cache.claimWrite("/music/Jay/Fantasy") {
		t.Fatal("first claim must succeed")
	}
	if !cache.claimWrite("/music/Jay/Eight Dimensions") {
		t.Fatal("claim for a second directory must succeed")
	}

	cache.releaseWrite("/music/Jay/Fantasy")

	if !cache.claimWrite("/music/Jay/Fantasy") {
		t.Fatal("released directory must be claimable again")
	}
	if cache.claimWrite("/music/Jay/Eight Dimensions") {
		t.Fatal("release must not touch other directories")
	}
}
