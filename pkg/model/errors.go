package model

import "errors"

// ErrInvalidMember is returned when a member is an object that is neither a Node nor an opaque reference.
var ErrInvalidMember = errors.New("invalid member: object is not a Node")

// ErrCycle is returned when registering a Node would make it reachable from itself.
var ErrCycle = errors.New("node cycle")

// ErrInvalidKey is returned when a key cannot address a member of the Node's shape.
var ErrInvalidKey = errors.New("invalid key")

// ErrIndexOutOfRange is returned when writing past the end of a sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrShapeMismatch is returned when data or an operation does not fit the Node's shape.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrUnknownMethod is returned by Call when no method with that name was configured.
var ErrUnknownMethod = errors.New("unknown method")
