package harness

import "strings"

// Registrar is the only capability an exercise script receives: it can
// declare tests, nothing else.
type Registrar struct {
	h      *Harness
	prefix []string
}

// It registers a test named name.
func (r *Registrar) It(name string, body func(t *T)) {
	if body == nil {
		return
	}
	r.h.Register(r.title(name), body)
}

// Describe groups the tests declared inside fn under name.
func (r *Registrar) Describe(name string, fn func()) {
	r.prefix = append(r.prefix, name)
	defer func() { r.prefix = r.prefix[:len(r.prefix)-1] }()
	fn()
}

func (r *Registrar) title(name string) string {
	if len(r.prefix) == 0 {
		return name
	}
	return strings.Join(append(append([]string{}, r.prefix...), name), " ")
}
