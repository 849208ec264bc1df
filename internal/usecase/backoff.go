package usecase

import "time"

// retryDelay returns the exponential backoff before the given attempt number
// runs again, capped at capSeconds. The first retry always waits at least two
// seconds.
func retryDelay(attempts int, capSeconds int) time.Duration {
	exp := attempts
	if exp < 1 {
		exp = 1
	}

	delay := int64(1)
	for i := 0; i < exp; i++ {
		delay *= 2
		if delay >= int64(capSeconds) {
			delay = int64(capSeconds)
			break
		}
	}

	return time.Duration(delay) * time.Second
}
