package keycache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// A key config source was (re)loaded with count item configs.
	KeysLoaded(source string, count int)

	// Reloading failed; the previously loaded configs stay active.
	ReloadFailed(source string, err error)

	// A malformed token in a db attribute was skipped.
	DbTokenSkipped(node, item, token string)

	// An expire attribute was malformed or non-positive and was ignored.
	ExpireIgnored(node, item, value string)

	// A stored value could not be decoded.
	DecodeFailed(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) KeysLoaded(string, int)                {}
func (NopHooks) ReloadFailed(string, error)            {}
func (NopHooks) DbTokenSkipped(string, string, string) {}
func (NopHooks) ExpireIgnored(string, string, string)  {}
func (NopHooks) DecodeFailed(string, error)            {}
