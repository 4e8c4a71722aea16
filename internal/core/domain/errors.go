package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrExperienceNotFound = errors.New("experience not found")

// ErrDataLoad marks a catalog that could not be read, decoded or validated.
var ErrDataLoad = errors.New("catalog data load failed")

// ErrUpstream marks a completion provider failure: transport error, timeout,
// non-2xx status, open circuit or an empty/undecodable payload.
var ErrUpstream = errors.New("recommendation upstream failed")
