package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into items ready for
// persistence, in file order. Call Validate first; Convert assumes the
// schema is valid. Items without created_at are stamped with now.
func Convert(schema *ImportSchema, now time.Time) ([]*domain.RawItem, error) {
	now = now.UTC().Truncate(time.Second)
	refMap := make(map[string]string, len(schema.Items)) // ref -> UUID

	items := make([]*domain.RawItem, 0, len(schema.Items))
	for _, it := range schema.Items {
		realID := uuid.New().String()
		refMap[it.Ref] = realID

		raw := &domain.RawItem{
			ID:        realID,
			Name:      it.Name,
			IsTask:    it.Kind == KindTask,
			DueDate:   parseOptionalDate(it.DueDate),
			Assignees: append([]string(nil), it.Assignees...),
			UpdatedAt: now,
		}

		start, end := parseOptionalDate(it.StartDate), parseOptionalDate(it.EndDate)
		if raw.IsTask {
			raw.StartDate, raw.EndDate = start, end
			if ref := deref(it.ParentRef); ref != "" {
				pid, ok := refMap[ref]
				if !ok {
					return nil, fmt.Errorf("parent_ref %q not found for item %q", ref, it.Ref)
				}
				raw.ParentID = &pid
			}
			if ref := deref(it.ProjectRef); ref != "" {
				pid, ok := refMap[ref]
				if !ok {
					return nil, fmt.Errorf("project_ref %q not found for item %q", ref, it.Ref)
				}
				raw.ProjectID = &pid
			}
		} else {
			raw.KickoffDate, raw.CloseDate = start, end
		}

		created := now
		if t, ok := parseTimestamp(deref(it.CreatedAt)); ok {
			created = t
		}
		raw.CreatedAt = &created
		if t, ok := parseTimestamp(deref(it.Completed)); ok {
			raw.CompletedAt = &t
		}

		items = append(items, raw)
	}
	return items, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// parseTimestamp accepts a bare date or an RFC3339 timestamp.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
