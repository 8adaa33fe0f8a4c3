package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"u1", "u2"},
		{"abc", "abd"},
		{"zzz", "aaa"},
		{"same", "same"},
	}

	for _, p := range pairs {
		assert.Equal(t, DeriveID(p[0], p[1]), DeriveID(p[1], p[0]))
	}
}

func TestDeriveIDOrdersLexicographically(t *testing.T) {
	assert.Equal(t, "pair_u1_u2", DeriveID("u2", "u1"))
	assert.Equal(t, "pair_u1_u2", DeriveID("u1", "u2"))
}

func TestDeriveIDDeterministic(t *testing.T) {
	first := DeriveID("alice-uid", "bob-uid")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveID("alice-uid", "bob-uid"))
	}
}
