// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "context"

// Execute sequences the cross-cutting call pipeline: block for the
// rate-limit slot, run op under the retry policy, then record the call
// completion on the limiter. The limiter timestamp is updated whether
// or not op ultimately succeeded, so a failing source still consumes
// its rate budget.
func Execute(ctx context.Context, lim *Limiter, policy RetryPolicy, name string, op func() error) error {
	if err := lim.Wait(ctx); err != nil {
		return err
	}
	err := policy.Do(ctx, name, op)
	lim.Mark()
	return err
}
