package service

import "errors"

// ErrVideoNotFound indicates the requested video does not exist.
var ErrVideoNotFound = errors.New("video not found")
