package broadcast

import "errors"

var (
	ErrClosed           = errors.New("broadcast: broadcaster is closed")
	ErrSubscriberClosed = errors.New("broadcast: subscriber is closed")
	ErrDeliveryAborted  = errors.New("broadcast: delivery aborted")
)
