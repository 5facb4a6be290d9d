package templates

// System defines the public contract for template persistence. The flat-file
// Store satisfies it today; an indexed per-key store could replace it without
// touching callers.
type System interface {
	All() ([]Template, error)
	Get(name string) (*Template, error)
	Contains(name string) (bool, error)
	Upsert(t Template) error
}

var _ System = (*Store)(nil)
