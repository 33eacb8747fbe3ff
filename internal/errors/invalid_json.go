package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

var ErrRateLimited = &Exception{
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
