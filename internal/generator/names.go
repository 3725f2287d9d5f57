package generator

import (
	"fmt"

	"github.com/toyz/pyforge/internal/models"
)

// nameAllocator hands out unique test names in first-come order. The first
// holder of a base name keeps it; later collisions get _2, _3 and so on.
type nameAllocator struct {
	taken map[string]bool
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{taken: make(map[string]bool)}
}

// testName derives the test name for a descriptor, honoring a name override
// directive and resolving collisions deterministically
func (a *nameAllocator) testName(desc models.CallableDescriptor) string {
	base := desc.Name
	if desc.NameOverride != "" {
		base = desc.NameOverride
	}

	name := "test_" + base
	if !a.taken[name] {
		a.taken[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !a.taken[candidate] {
			a.taken[candidate] = true
			return candidate
		}
	}
}
