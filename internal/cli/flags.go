package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
	"github.com/spf13/pflag"
)

// kindValue is a pflag.Value that only accepts known resource kinds.
type kindValue struct {
	target *domain.ResourceKind
}

var _ pflag.Value = (*kindValue)(nil)

func newKindValue(target *domain.ResourceKind) *kindValue {
	return &kindValue{target: target}
}

func (v *kindValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *kindValue) Set(s string) error {
	kind, err := domain.ParseResourceKind(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	*v.target = kind
	return nil
}

func (v *kindValue) Type() string { return "kind" }

// halfValue is a pflag.Value for --half that records whether it was set.
type halfValue struct {
	half timeline.Half
	set  bool
}

var _ pflag.Value = (*halfValue)(nil)

func (v *halfValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%d", int(v.half))
}

func (v *halfValue) Set(s string) error {
	h, err := timeline.ParseHalf(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	v.half, v.set = h, true
	return nil
}

func (v *halfValue) Type() string { return "half" }

// ptr returns the parsed half, or nil when the flag was not given.
func (v *halfValue) ptr() *timeline.Half {
	if !v.set {
		return nil
	}
	h := v.half
	return &h
}

// windowFlags are the window selectors shared by show and move.
type windowFlags struct {
	month string
	half  halfValue
}

func (w *windowFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&w.month, "month", "", "Month to show (YYYY-MM); defaults to the current month")
	fs.Var(&w.half, "half", "Half of the month: 0 (days 1-15) or 1 (16-end)")
}

// parseOptionalDate parses a YYYY-MM-DD flag value; empty yields nil.
func parseOptionalDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", flag, s)
	}
	return &t, nil
}

// parseMonth parses a --month value (YYYY-MM).
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q (expected YYYY-MM)", s)
	}
	return t, nil
}
