package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims_Basic(t *testing.T) {
	p := New[string, string]()

	_, ok := p.Claim("tx1")
	assert.False(t, ok)

	require.NoError(t, p.CreateClaim("A", "tx1"))
	owner, ok := p.Claim("tx1")
	require.True(t, ok)
	assert.Equal(t, "A", owner)

	assert.ErrorIs(t, p.CreateClaim("B", "tx1"), ErrClaimAlreadyExists)
	owner, _ = p.Claim("tx1")
	assert.Equal(t, "A", owner)

	require.NoError(t, p.RevokeClaim("A", "tx1"))
	_, ok = p.Claim("tx1")
	assert.False(t, ok)
}

func TestClaims_SameOwnerCannotReclaim(t *testing.T) {
	p := New[string, string]()
	require.NoError(t, p.CreateClaim("A", "doc"))
	assert.ErrorIs(t, p.CreateClaim("A", "doc"), ErrClaimAlreadyExists)
}

func TestClaims_RevokeNotFound(t *testing.T) {
	p := New[string, string]()
	assert.ErrorIs(t, p.RevokeClaim("A", "missing"), ErrClaimNotFound)
}

func TestClaims_RevokeByNonOwner(t *testing.T) {
	p := New[string, string]()
	require.NoError(t, p.CreateClaim("A", "doc"))

	assert.ErrorIs(t, p.RevokeClaim("B", "doc"), ErrNotClaimOwner)
	owner, ok := p.Claim("doc")
	require.True(t, ok)
	assert.Equal(t, "A", owner)
}

func TestClaims_Dispatch(t *testing.T) {
	p := New[string, string]()

	create := CreateClaimCall[string, string]{Content: "doc"}
	revoke := RevokeClaimCall[string, string]{Content: "doc"}
	assert.Equal(t, "create_claim", create.Name())
	assert.Equal(t, "revoke_claim", revoke.Name())

	require.NoError(t, p.Dispatch("A", create))
	assert.ErrorIs(t, p.Dispatch("B", revoke), ErrNotClaimOwner)
	require.NoError(t, p.Dispatch("A", revoke))
	assert.ErrorIs(t, p.Dispatch("A", revoke), ErrClaimNotFound)
}

func TestClaims_EachAndClone(t *testing.T) {
	p := New[string, string]()
	require.NoError(t, p.CreateClaim("B", "zeta"))
	require.NoError(t, p.CreateClaim("A", "alpha"))

	c := p.Clone()
	require.NoError(t, c.RevokeClaim("A", "alpha"))

	var contents, owners []string
	p.Each(func(content, owner string) {
		contents = append(contents, content)
		owners = append(owners, owner)
	})
	assert.Equal(t, []string{"alpha", "zeta"}, contents)
	assert.Equal(t, []string{"A", "B"}, owners)

	_, ok := c.Claim("alpha")
	assert.False(t, ok)
}
