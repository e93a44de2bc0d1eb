package repeat

import "time"

// Repeat calls f until it succeeds or attempts run out, sleeping delay between
// failed attempts. It returns the last error.
func Repeat(f func() error, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}

	return err
}
