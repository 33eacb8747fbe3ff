package errors

import "net/http"

var ErrActivityNotFound = &Exception{
	Message:    "Activity not found",
	StatusCode: http.StatusNotFound,
}
