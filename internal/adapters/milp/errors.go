package milp

import "errors"

var (
	errInvalidModel = errors.New("milp: model was not built by this engine")
	errNoBackend    = errors.New("milp: no configured solver backend is available")
)
