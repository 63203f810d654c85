package resource

// noCopy lets go vet's copylocks check flag copies of an Auto.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Auto owns one reference to a resource. Dropping the last Auto of a
// resource frees its handle.
//
// An Auto is not safe for concurrent use; give each goroutine its own handle
// with Clone or Move. Always pass it by pointer.
type Auto[T Resource] struct {
	_    noCopy
	res  T
	held bool
}

// NewAuto acquires res and returns a handle owning that reference.
func NewAuto[T Resource](res T) (*Auto[T], error) {
	if err := res.Acquire(); err != nil {
		return nil, err
	}
	return &Auto[T]{res: res, held: true}, nil
}

// MustAuto is NewAuto for callers that treat a load failure as fatal.
func MustAuto[T Resource](res T) *Auto[T] {
	a, err := NewAuto(res)
	if err != nil {
		fatalf("resource: %v", err)
	}
	return a
}

// Valid reports whether the handle still owns a reference.
func (a *Auto[T]) Valid() bool {
	return a != nil && a.held
}

// Get returns the owned resource. Calling Get on an empty handle is fatal.
func (a *Auto[T]) Get() T {
	if !a.Valid() {
		fatalf("resource: Get on an empty handle")
	}
	return a.res
}

// Clone returns a second handle sharing the same resource.
func (a *Auto[T]) Clone() *Auto[T] {
	res := a.Get()
	res.Retain()
	return &Auto[T]{res: res, held: true}
}

// Move transfers the reference to a new handle and empties a.
func (a *Auto[T]) Move() *Auto[T] {
	res := a.Get()
	a.clear()
	return &Auto[T]{res: res, held: true}
}

// Release drops the reference owned by this handle. Releasing an empty handle
// is a no-op.
func (a *Auto[T]) Release() {
	if !a.Valid() {
		return
	}
	res := a.res
	a.clear()
	res.Release()
}

func (a *Auto[T]) clear() {
	var zero T
	a.res = zero
	a.held = false
}
