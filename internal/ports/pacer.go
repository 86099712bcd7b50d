package ports

import "context"

// Pacer gates the sample loop. Wait blocks until the next sample is due and
// returns the correlated line that triggered it, if any (timer pacing always
// returns ""). A ctx cancellation surfaces as ctx.Err().
type Pacer interface {
	Wait(ctx context.Context) (line string, err error)
}
