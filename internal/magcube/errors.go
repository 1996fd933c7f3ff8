package magcube

import "errors"

var (
	ErrDomainType    = errors.New("domain type mismatch")
	ErrNoJacobian    = errors.New("model returned no input jacobian")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrBadBatchSize  = errors.New("batch size must be >= 1")
	ErrUnknownModel  = errors.New("unknown model kind")
	ErrUnknownDomain = errors.New("unknown domain kind")
	ErrBadFrame      = errors.New("unsupported celestial frame")
	ErrNoCoordRange  = errors.New("state has no coordinate range")
)
