package domain

import "fmt"

// ResourceKind scopes a timeline board and its persisted row order.
type ResourceKind string

const (
	ResourceTasks    ResourceKind = "tasks"
	ResourceProjects ResourceKind = "projects"
)

// ValidResourceKinds is the canonical set of accepted resource kind strings.
var ValidResourceKinds = map[string]bool{
	"tasks": true, "projects": true,
}

// ParseResourceKind validates s and returns it as a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	if !ValidResourceKinds[s] {
		return "", fmt.Errorf("unknown resource kind %q (expected tasks or projects)", s)
	}
	return ResourceKind(s), nil
}

// OrderKey identifies one persisted row-order slot.
type OrderKey struct {
	ResourceKind ResourceKind
	UserID       string
}

func (k OrderKey) String() string {
	return fmt.Sprintf("%s/%s", k.ResourceKind, k.UserID)
}
