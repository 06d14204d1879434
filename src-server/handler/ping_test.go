package handler

import (
	"errors"
	"testing"
	"time"

	"neneka/src-server/utils"

	"github.com/stretchr/testify/assert"
)

func TestTaskField(t *testing.T) {
	next := time.Date(2024, 7, 6, 14, 0, 0, 0, time.UTC)
	last := time.Date(2024, 7, 5, 14, 0, 0, 0, time.UTC)

	field := taskField(utils.TaskState{Name: "daily-notify", NextRun: next})
	assert.Equal(t, "daily-notify", field.Name)
	assert.Contains(t, field.Value, "Last: not run yet")
	assert.Contains(t, field.Value, "Next: <t:1720274400:R>")

	field = taskField(utils.TaskState{Name: "ingest", NextRun: next, LastRun: last, Runs: 1200})
	assert.Contains(t, field.Value, "Last: ok <t:1720188000:R>")
	assert.Contains(t, field.Value, "Runs: 1,200")

	field = taskField(utils.TaskState{Name: "ingest", NextRun: next, LastRun: last, LastErr: errors.New("fetch")})
	assert.Contains(t, field.Value, "Last: failed")
}
