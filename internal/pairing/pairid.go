// Package pairing derives the canonical identifier shared by two partners.
//
// Both partners' clients must converge on the same scoping key without a
// coordination round-trip, so the derivation is a pure function of the two
// user ids. A stored pairId always takes precedence over a freshly derived
// one; derivation is only a repair path for users whose stored id is missing
// despite having a linked partner.
package pairing

// DeriveID returns the canonical pair identifier for two user ids,
// independent of argument order.
func DeriveID(userA, userB string) string {
	smaller, larger := userA, userB
	if smaller > larger {
		smaller, larger = larger, smaller
	}
	return "pair_" + smaller + "_" + larger
}
