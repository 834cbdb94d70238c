package anchor

import "errors"

var (
	// ErrInvalidKey is returned for keys without an anchored node.
	ErrInvalidKey = errors.New("anchor: key has no anchored node")

	// ErrAlreadyAttached is returned when attaching a key twice.
	ErrAlreadyAttached = errors.New("anchor: key already attached")

	// ErrNotAttached is returned when detaching a key that is not attached.
	ErrNotAttached = errors.New("anchor: key not attached")

	// ErrNoReferencePointProvider is returned when the info passed to
	// ChopBox.Attach or ChopBox.Detach is not a ReferencePointProvider.
	ErrNoReferencePointProvider = errors.New("anchor: info is not a reference point provider")

	// ErrNoReferencePoint is returned when a provider has no reference point
	// for the key being computed.
	ErrNoReferencePoint = errors.New("anchor: no reference point for key")

	// ErrProviderMismatch is returned by ChopBox.Detach when the provider
	// differs from the one the key was attached with.
	ErrProviderMismatch = errors.New("anchor: provider differs from the one used at attach")

	// ErrUnsupportedGeometry is returned for geometries that are neither
	// shapes nor curves.
	ErrUnsupportedGeometry = errors.New("anchor: geometry is neither a shape nor a curve")

	// ErrNoVertices is returned for shapes without outline segments.
	ErrNoVertices = errors.New("anchor: shape has no vertices")
)
