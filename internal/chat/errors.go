package chat

import "errors"

// ErrEmptyQuestion is returned by Respond for blank input.
var ErrEmptyQuestion = errors.New("question is empty")
