package dialog

import (
	"fmt"
	"math/rand"
	"sync"
)

// Responder builds the "I didn't get that" apology from two independently
// drawn catalog parts, with the user's first name in between. The random
// source is injected so tests can pin the draw.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
	cat Catalog
}

func NewResponder(cat Catalog, src rand.Source) *Responder {
	return &Responder{rng: rand.New(src), cat: cat}
}

// Compose returns one apology. Successive calls vary the wording.
func (r *Responder) Compose(firstName string) string {
	r.mu.Lock()
	lead := r.rng.Intn(3) + 1
	tail := r.rng.Intn(3) + 1
	r.mu.Unlock()

	return r.cat.Text(apologyLeadKey(lead)) + firstName + r.cat.Text(apologyTailKey(tail))
}

func apologyLeadKey(n int) string { return fmt.Sprintf("no_entendi_1_%d", n) }
func apologyTailKey(n int) string { return fmt.Sprintf("no_entendi_2_%d", n) }
