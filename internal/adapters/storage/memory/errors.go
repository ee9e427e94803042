package memory

import "errors"

var errIDRequired = errors.New("id required")
