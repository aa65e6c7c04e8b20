package mail

import "time"

const (
	SendAttempts = 3
	SendDelay    = 2 * time.Second
)

// Retry runs fn up to attempts times, sleeping delay between failures,
// and returns the last error once the bound is exhausted.
func Retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
