package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelworks/kestrel/internal/value"
)

func eventInput() map[string]value.Value {
	return map[string]value.Value{"event": value.NewActionEvent(value.Attempted)}
}

func TestAckFillsWhenAccepting(t *testing.T) {
	out := NewAckAction().Execute(eventInput(), map[string]value.Param{"accept": value.NewBoolParam(true)})
	assert.Equal(t, value.NewActionEvent(value.Filled), out["outcome"])
}

func TestAckRejectsWhenNotAccepting(t *testing.T) {
	out := NewAckAction().Execute(eventInput(), map[string]value.Param{"accept": value.NewBoolParam(false)})
	assert.Equal(t, value.NewActionEvent(value.Rejected), out["outcome"])
}

func TestAckDefaultsToAccepting(t *testing.T) {
	out := NewAckAction().Execute(eventInput(), nil)
	assert.Equal(t, value.NewActionEvent(value.Filled), out["outcome"])
}

func TestAnnotateReportsAttempted(t *testing.T) {
	out := NewAnnotateAction().Execute(eventInput(), map[string]value.Param{"note": value.NewStringParam("checked")})
	assert.Equal(t, value.NewActionEvent(value.Attempted), out["outcome"])
}

func TestMissingEventInputPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAckAction().Execute(map[string]value.Value{}, nil)
	})
}
