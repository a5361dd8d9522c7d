package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTimelineRequest_SetsKey(t *testing.T) {
	req := NewTimelineRequest(ResourceTasks, "u1")

	assert.Equal(t, OrderKey{ResourceKind: ResourceTasks, UserID: "u1"}, req.Key)
	assert.Nil(t, req.Now)
	assert.Empty(t, req.Month)
	assert.Nil(t, req.Half)
	assert.Equal(t, NavNone, req.Nav)
	assert.Empty(t, req.Collapsed)
	assert.False(t, req.HideCompleted)
}

func TestTimelineError_Message(t *testing.T) {
	err := &TimelineError{Code: TimelineErrInvalidMonth, Message: "month must be YYYY-MM"}
	assert.Equal(t, "INVALID_MONTH: month must be YYYY-MM", err.Error())
}
