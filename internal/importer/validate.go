package importer

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Validate checks the schema before conversion and returns every problem
// found. Parent and project refs must point at items that appear earlier
// in the list, so a valid file cannot describe a parent cycle.
func Validate(schema *ImportSchema) []error {
	var errs []error
	if len(schema.Items) == 0 {
		return []error{fmt.Errorf("items: at least one item is required")}
	}

	kinds := make(map[string]string)
	for i, it := range schema.Items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := kinds[it.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		}

		if it.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		switch it.Kind {
		case KindTask, KindProject:
		case "":
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		default:
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q (expected task or project)", prefix, it.Kind))
		}

		if ref := deref(it.ParentRef); ref != "" {
			switch {
			case it.Kind == KindProject:
				errs = append(errs, fmt.Errorf("%s.parent_ref: projects cannot have a parent", prefix))
			case kinds[ref] == "":
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in items list)", prefix, ref))
			case kinds[ref] != KindTask:
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q is not a task", prefix, ref))
			}
		}
		if ref := deref(it.ProjectRef); ref != "" {
			switch {
			case it.Kind == KindProject:
				errs = append(errs, fmt.Errorf("%s.project_ref: only tasks belong to a project", prefix))
			case kinds[ref] == "":
				errs = append(errs, fmt.Errorf("%s.project_ref: ref %q not found (must appear earlier in items list)", prefix, ref))
			case kinds[ref] != KindProject:
				errs = append(errs, fmt.Errorf("%s.project_ref: ref %q is not a project", prefix, ref))
			}
		}

		errs = append(errs, validateOptionalDate(prefix+".start_date", it.StartDate)...)
		errs = append(errs, validateOptionalDate(prefix+".end_date", it.EndDate)...)
		errs = append(errs, validateOptionalDate(prefix+".due_date", it.DueDate)...)
		errs = append(errs, validateOptionalTimestamp(prefix+".created_at", it.CreatedAt)...)
		errs = append(errs, validateOptionalTimestamp(prefix+".completed_at", it.Completed)...)

		if it.Ref != "" {
			if _, dup := kinds[it.Ref]; !dup {
				kinds[it.Ref] = it.Kind
			}
		}
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}

func validateOptionalTimestamp(field string, s *string) []error {
	if s == nil || *s == "" {
		return nil
	}
	if _, ok := parseTimestamp(*s); !ok {
		return []error{fmt.Errorf("%s: invalid timestamp %q (expected YYYY-MM-DD or RFC3339)", field, *s)}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
