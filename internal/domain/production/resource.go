package production

// Resource identifies both a resource kind and the robot tier that produces it.
// Tiers are ordered by dependency depth: a tier's build cost may only reference
// resources produced by itself or by an earlier tier.
type Resource int

const (
	Ore Resource = iota
	Clay
	Obsidian
	Geode
)

// NumResources is the number of resource kinds (and robot tiers)
const NumResources = 4

// Terminal is the resource whose end-of-horizon stock is maximized
const Terminal = Geode

// numIntermediate is the number of non-terminal tiers (those that carry skip flags)
const numIntermediate = NumResources - 1

var resourceNames = [NumResources]string{"ore", "clay", "obsidian", "geode"}

// String returns the lowercase name of the resource
func (r Resource) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return resourceNames[r]
}

// Valid reports whether r is one of the known resources
func (r Resource) Valid() bool {
	return r >= Ore && r < NumResources
}

// IsTerminal reports whether r is the terminal resource
func (r Resource) IsTerminal() bool {
	return r == Terminal
}

// ParseResource resolves a resource name. Plural forms ("geodes") are accepted.
func ParseResource(name string) (Resource, bool) {
	for i, n := range resourceNames {
		if name == n || name == n+"s" {
			return Resource(i), true
		}
	}
	return 0, false
}

// ResourceNames returns the known resource names in dependency order
func ResourceNames() []string {
	names := make([]string, NumResources)
	copy(names, resourceNames[:])
	return names
}

// Resources returns all resources in dependency order
func Resources() []Resource {
	return []Resource{Ore, Clay, Obsidian, Geode}
}
