package subscription

import "errors"

var (
	ErrSelfFollow        = errors.New("you cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)
