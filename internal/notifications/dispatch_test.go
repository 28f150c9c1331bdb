package notifications

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"fooddash/internal/push"
)

type fakeSender struct {
	SendFunc func(ctx context.Context, token string, msg push.Message) error

	mu    sync.Mutex
	calls []string
}

func (f *fakeSender) Send(ctx context.Context, token string, msg push.Message) error {
	f.mu.Lock()
	f.calls = append(f.calls, token)
	f.mu.Unlock()
	if f.SendFunc != nil {
		return f.SendFunc(ctx, token, msg)
	}
	return nil
}

func (f *fakeSender) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestDeliverIsolatesFailures(t *testing.T) {
	sender := &fakeSender{SendFunc: func(_ context.Context, token string, _ push.Message) error {
		if token == "bad" {
			return errors.New("UNREGISTERED")
		}
		return nil
	}}
	d := NewDispatcher(sender, 0)

	tokens := []string{"a", "bad", "b", "c"}
	results := d.Deliver(context.Background(), tokens, push.Message{Title: "hi"})

	if len(results) != len(tokens) {
		t.Fatalf("got %d results, want %d", len(results), len(tokens))
	}
	for i, r := range results {
		if r.Token != tokens[i] {
			t.Errorf("result %d token = %q, want %q", i, r.Token, tokens[i])
		}
		wantOK := tokens[i] != "bad"
		if r.Success != wantOK {
			t.Errorf("token %q success = %v", r.Token, r.Success)
		}
	}
	if results[1].Error != "UNREGISTERED" {
		t.Errorf("error = %q", results[1].Error)
	}
	if got := CountSent(results); got != 3 {
		t.Errorf("CountSent = %d, want 3", got)
	}
}

func TestDeliverRunsConcurrently(t *testing.T) {
	const n = 8
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})

	sender := &fakeSender{SendFunc: func(context.Context, string, push.Message) error {
		started.Done()
		<-release
		return nil
	}}
	d := NewDispatcher(sender, 0)

	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = string(rune('a' + i))
	}

	done := make(chan []Result)
	go func() { done <- d.Deliver(context.Background(), tokens, push.Message{}) }()

	// every send must be in flight before any is released
	started.Wait()
	close(release)

	if got := CountSent(<-done); got != n {
		t.Errorf("CountSent = %d, want %d", got, n)
	}
}

func TestDeliverBatched(t *testing.T) {
	var inFlight, peak int32
	sender := &fakeSender{SendFunc: func(_ context.Context, token string, _ push.Message) error {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		atomic.AddInt32(&inFlight, -1)
		if token == "t3" {
			return errors.New("boom")
		}
		return nil
	}}
	d := NewDispatcher(sender, 2)

	tokens := []string{"t0", "t1", "t2", "t3", "t4"}
	sent := d.DeliverBatched(context.Background(), tokens, push.Message{}, 2)

	if sent != 4 {
		t.Errorf("sent = %d, want 4", sent)
	}
	if len(sender.Calls()) != len(tokens) {
		t.Errorf("calls = %v", sender.Calls())
	}
	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds batch size", peak)
	}
}

func TestDeliverBatchedEmpty(t *testing.T) {
	d := NewDispatcher(&fakeSender{}, 0)
	if got := d.DeliverBatched(context.Background(), nil, push.Message{}, 0); got != 0 {
		t.Errorf("sent = %d", got)
	}
}

func TestUniqueTokens(t *testing.T) {
	got := uniqueTokens([]string{"a", "", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
