package ai

import "errors"

// ErrUnavailable means the provider has no credential configured and no
// generation attempt was made.
var ErrUnavailable = errors.New("ai provider not configured")
