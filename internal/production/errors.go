package production

import "errors"

var ErrClosed = errors.New("publisher closed")
