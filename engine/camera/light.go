package camera

import (
	"sync"

	"github.com/XingYaoA/manim/common"
)

// DefaultLightPosition is the world-space light position cameras use when no
// other position is configured.
var DefaultLightPosition = common.Vec3{-10, 10, 10}

// lightSourceImpl is the implementation of the LightSource interface.
type lightSourceImpl struct {
	mu       sync.Mutex
	position common.Vec3
}

// LightSource is a single world-space light position. Each capture maps it
// into camera space and hands it to every draw through the perspective
// uniforms.
type LightSource interface {
	// Position retrieves the light's world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// SetPosition moves the light. The change takes effect on the next
	// capture's uniform refresh.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position common.Vec3)
}

var _ LightSource = &lightSourceImpl{}

// LightSourceBuilderOption configures a LightSource during construction.
type LightSourceBuilderOption func(*lightSourceImpl)

// WithPosition sets the light's initial world-space position.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - LightSourceBuilderOption: the option to apply
func WithPosition(position common.Vec3) LightSourceBuilderOption {
	return func(l *lightSourceImpl) {
		l.position = position
	}
}

// NewLightSource creates a LightSource at the default position.
//
// Parameters:
//   - options: variadic list of LightSourceBuilderOption functions
//
// Returns:
//   - LightSource: a new LightSource instance
func NewLightSource(options ...LightSourceBuilderOption) LightSource {
	l := &lightSourceImpl{
		position: DefaultLightPosition,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightSourceImpl) Position() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightSourceImpl) SetPosition(position common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}
