package contract

import "github.com/alexanderramin/kairos-gantt/internal/domain"

type ResourceKind = domain.ResourceKind

const (
	ResourceTasks    ResourceKind = domain.ResourceTasks
	ResourceProjects ResourceKind = domain.ResourceProjects
)

type OrderKey = domain.OrderKey
