package keycache

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports a key config source that is missing, unreadable or malformed.
	ErrConfig = errors.New("keycache: invalid key config source")
	// ErrConfigNotFound reports a node/item pair absent from the key store.
	ErrConfigNotFound = errors.New("keycache: key config not found")
	// ErrInvalidKeyConfig reports a key config without a key template.
	ErrInvalidKeyConfig = errors.New("keycache: key template is empty")
	// ErrArgumentMissing reports a required constructor argument that is empty or nil.
	ErrArgumentMissing = errors.New("keycache: required argument missing")

	ErrInvalidArgument = errors.New("keycache: invalid argument")
	ErrUnsupportedWhen = errors.New("keycache: unsupported write condition")
	ErrSameKey         = errors.New("keycache: source and destination keys are equal")
	ErrCrossShard      = errors.New("keycache: keys resolve to different shards")
)

type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("keycache: key config: %v", e.Err)
	}
	return fmt.Sprintf("keycache: key config %q: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}

// KeyError ties ErrConfigNotFound or ErrInvalidKeyConfig to the node/item pair.
type KeyError struct {
	Node string
	Item string
	Err  error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v (node=%s, item=%s)", e.Err, e.Node, e.Item)
}

func (e *KeyError) Unwrap() error { return e.Err }

type ArgumentError struct {
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("keycache: %s is required", e.Name)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrArgumentMissing }
