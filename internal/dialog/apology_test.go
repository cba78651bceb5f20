package dialog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponderComposesFromBothParts(t *testing.T) {
	r := NewResponder(nil, rand.NewSource(1))

	got := r.Compose("Iker")
	assert.Contains(t, got, "Iker")

	var lead, tail bool
	for i := 1; i <= 3; i++ {
		if got == defaultTexts[apologyLeadKey(i)]+"Iker"+defaultTexts[apologyTailKey(1)] ||
			got == defaultTexts[apologyLeadKey(i)]+"Iker"+defaultTexts[apologyTailKey(2)] ||
			got == defaultTexts[apologyLeadKey(i)]+"Iker"+defaultTexts[apologyTailKey(3)] {
			lead, tail = true, true
		}
	}
	assert.True(t, lead && tail, "composition %q not built from catalog parts", got)
}

func TestResponderDeterministicWithPinnedSource(t *testing.T) {
	a := NewResponder(nil, rand.NewSource(7))
	b := NewResponder(nil, rand.NewSource(7))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Compose("Ana"), b.Compose("Ana"))
	}
}

func TestResponderVariesAcrossDraws(t *testing.T) {
	r := NewResponder(nil, rand.NewSource(3))

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		seen[r.Compose("Ana")] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestResponderUsesCatalogOverride(t *testing.T) {
	cat := Catalog{
		"no_entendi_1_1": "Barkatu, ",
		"no_entendi_1_2": "Barkatu, ",
		"no_entendi_1_3": "Barkatu, ",
	}
	r := NewResponder(cat, rand.NewSource(1))

	assert.Contains(t, r.Compose("Ane"), "Barkatu, Ane")
}
