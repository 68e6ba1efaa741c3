// Package claims is a proof-of-existence registry: each content value
// is owned by at most one account.
package claims

import (
	"cmp"
	"errors"
	"maps"
	"slices"
)

// ModuleName identifies this pallet in diagnostics.
const ModuleName = "claims"

var (
	ErrClaimAlreadyExists = errors.New("claims: claim already exists")
	ErrClaimNotFound      = errors.New("claims: claim not found")
	ErrNotClaimOwner      = errors.New("claims: caller is not the claim owner")
)

// Pallet maps content to its owner.
type Pallet[A cmp.Ordered, C cmp.Ordered] struct {
	claims map[C]A
}

// New creates an empty claim registry.
func New[A cmp.Ordered, C cmp.Ordered]() *Pallet[A, C] {
	return &Pallet[A, C]{claims: make(map[C]A)}
}

// Claim returns the owner of content, if any.
func (p *Pallet[A, C]) Claim(content C) (A, bool) {
	owner, ok := p.claims[content]
	return owner, ok
}

// CreateClaim records caller as the owner of content.
func (p *Pallet[A, C]) CreateClaim(caller A, content C) error {
	if _, ok := p.claims[content]; ok {
		return ErrClaimAlreadyExists
	}
	p.claims[content] = caller
	return nil
}

// RevokeClaim removes the claim on content. Only the owner may revoke.
// Ownership is plain equality; the caller is authenticated upstream.
func (p *Pallet[A, C]) RevokeClaim(caller A, content C) error {
	owner, ok := p.claims[content]
	if !ok {
		return ErrClaimNotFound
	}
	if owner != caller {
		return ErrNotClaimOwner
	}
	delete(p.claims, content)
	return nil
}

// Each calls fn for every claim in ascending content order.
func (p *Pallet[A, C]) Each(fn func(content C, owner A)) {
	for _, content := range slices.Sorted(maps.Keys(p.claims)) {
		fn(content, p.claims[content])
	}
}

// Clone returns an independent copy of the pallet.
func (p *Pallet[A, C]) Clone() *Pallet[A, C] {
	return &Pallet[A, C]{claims: maps.Clone(p.claims)}
}
