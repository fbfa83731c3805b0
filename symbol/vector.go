package symbol

import "github.com/emirpasic/gods/lists/arraylist"

// Vector is an index-keyed reconstitution of one scope's symbols, used
// when reading an intermediate-code file.
type Vector struct {
	scope int32
	items *arraylist.List
}

func newVector(scope int32) *Vector {
	return &Vector{scope: scope, items: arraylist.New()}
}

// Scope returns the scope index this vector reconstitutes.
func (v *Vector) Scope() int32 { return v.scope }

// Len returns the number of symbols recalled into this scope.
func (v *Vector) Len() int32 { return int32(v.items.Size()) }

// Add appends sym, stamping its Scope/Index to this vector's position, and
// returns the index it was placed at.
func (v *Vector) Add(sym *Recalled) int32 {
	index := v.Len()
	sym.Scope = v.scope
	sym.Index = index
	v.items.Add(sym)
	return index
}

// At returns the symbol at index, or (nil, false) if out of range.
func (v *Vector) At(index int32) (*Recalled, bool) {
	if index < 0 || index >= v.Len() {
		return nil, false
	}
	item, found := v.items.Get(int(index))
	if !found {
		return nil, false
	}
	return item.(*Recalled), true
}

// VectorVector is an index-keyed collection of per-scope Vectors, the
// recall-time counterpart of TableVector.
type VectorVector struct {
	scopes *arraylist.List
}

// NewVectorVector creates a vector vector containing a single empty
// global-scope vector.
func NewVectorVector() *VectorVector {
	vv := &VectorVector{scopes: arraylist.New()}
	vv.scopes.Add(newVector(Global))
	return vv
}

// Len returns the number of scopes.
func (vv *VectorVector) Len() int32 { return int32(vv.scopes.Size()) }

// At returns the vector for scope, or (nil, false) if out of range.
func (vv *VectorVector) At(scope int32) (*Vector, bool) {
	if scope < 0 || scope >= vv.Len() {
		return nil, false
	}
	item, found := vv.scopes.Get(int(scope))
	if !found {
		return nil, false
	}
	return item.(*Vector), true
}

// Push opens a new empty scope vector and returns its index.
func (vv *VectorVector) Push() int32 {
	index := vv.Len()
	vv.scopes.Add(newVector(index))
	return index
}

// Resolve dereferences ref against this vector vector, returning the
// symbol it names, or (nil, false) if ref is NoRef or out of range.
func (vv *VectorVector) Resolve(ref Ref) (*Recalled, bool) {
	if ref == NoRef {
		return nil, false
	}
	vec, found := vv.At(ref.Scope)
	if !found {
		return nil, false
	}
	return vec.At(ref.Index)
}
