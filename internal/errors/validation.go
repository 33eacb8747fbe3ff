package errors

import "net/http"

var ErrBatchMismatch = &Exception{
	Message:    "The number of tasks must match the number of status_ids.",
	StatusCode: http.StatusBadRequest,
}

var ErrContentTooShort = &Exception{
	Message:    "The activity must be at least 5 characters long.",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrNoActivities = &Exception{
	Message:    "At least one task is required.",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrUnknownStatus = &Exception{
	Message:    "The selected status does not exist.",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrActivityNotPaused = &Exception{
	Message:    "Activity is not paused",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidSort = &Exception{
	Message:    "unsupported sort field",
	StatusCode: http.StatusBadRequest,
}

var ErrValidation = &Exception{
	Message:    "validation failed",
	StatusCode: http.StatusUnprocessableEntity,
}
