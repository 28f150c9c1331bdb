package notifications

import (
	"context"
	"expvar"

	"fooddash/internal/push"

	"golang.org/x/sync/errgroup"
)

const DefaultBatchSize = 500

var (
	pushSent   = expvar.NewInt("push_sent")
	pushFailed = expvar.NewInt("push_failed")
)

// Result is the outcome of one delivery attempt.
type Result struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Dispatcher struct {
	Sender    push.Sender
	BatchSize int
}

func NewDispatcher(sender push.Sender, batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Dispatcher{Sender: sender, BatchSize: batchSize}
}

// Deliver sends msg to every token concurrently and waits for all of them. A failing token
// only marks its own Result; siblings are never cancelled.
func (d *Dispatcher) Deliver(ctx context.Context, tokens []string, msg push.Message) []Result {
	results := make([]Result, len(tokens))

	var g errgroup.Group
	for i, token := range tokens {
		g.Go(func() error {
			r := Result{Token: token}
			if err := d.Sender.Send(ctx, token, msg); err != nil {
				r.Error = err.Error()
				pushFailed.Add(1)
			} else {
				r.Success = true
				pushSent.Add(1)
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// DeliverBatched delivers in sequential batches of batchSize (DefaultBatchSize when <= 0),
// each batch fanned out concurrently. It returns the total success count.
func (d *Dispatcher) DeliverBatched(ctx context.Context, tokens []string, msg push.Message, batchSize int) int {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	sent := 0
	for start := 0; start < len(tokens); start += batchSize {
		end := min(start+batchSize, len(tokens))
		sent += CountSent(d.Deliver(ctx, tokens[start:end], msg))
	}
	return sent
}

func CountSent(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}

// uniqueTokens drops empty and repeated tokens, keeping first-seen order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
