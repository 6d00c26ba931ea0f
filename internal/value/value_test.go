package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsCarryTheirVariant(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		ty   ValueType
	}{
		{"number", NewNumber(4.2), TypeNumber},
		{"series", NewSeries([]float64{1, 2, 3}), TypeSeries},
		{"bool", NewBool(true), TypeBool},
		{"string", NewString("x"), TypeString},
		{"trigger event", NewTriggerEvent(Emitted), TypeEvent},
		{"action event", NewActionEvent(Filled), TypeEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ty, tt.val.Type)
		})
	}
}

func TestAccessorsRejectOtherVariants(t *testing.T) {
	_, ok := NewBool(true).AsNumber()
	assert.False(t, ok)

	_, ok = NewNumber(1).AsBool()
	assert.False(t, ok)

	_, ok = NewString("x").AsEvent()
	assert.False(t, ok)

	n, ok := NewNumber(3.5).AsNumber()
	require.True(t, ok)
	assert.Equal(t, 3.5, n)
}

func TestComputeProjectionExcludesEventsAndStrings(t *testing.T) {
	for _, v := range []Value{NewNumber(1), NewSeries([]float64{1}), NewBool(false)} {
		_, ok := ToComputeValue(v)
		assert.True(t, ok, v.String())
	}

	for _, v := range []Value{NewTriggerEvent(Emitted), NewActionEvent(Filled), NewString("x")} {
		_, ok := ToComputeValue(v)
		assert.False(t, ok, v.String())
	}
}

func TestTriggerProjectionAdmitsTriggerEventsOnly(t *testing.T) {
	projected, ok := ToTriggerValue(NewTriggerEvent(NotEmitted))
	require.True(t, ok)
	assert.Equal(t, OriginTrigger, projected.Event.Origin)

	_, ok = ToTriggerValue(NewActionEvent(Filled))
	assert.False(t, ok)

	_, ok = ToTriggerValue(NewString("x"))
	assert.False(t, ok)
}

func TestActionProjectionDowngradesTriggerEventsToAttempted(t *testing.T) {
	projected, ok := ToActionValue(NewTriggerEvent(Emitted))
	require.True(t, ok)
	assert.Equal(t, OriginAction, projected.Event.Origin)
	assert.Equal(t, Attempted, projected.Event.Outcome)

	kept, ok := ToActionValue(NewActionEvent(Cancelled))
	require.True(t, ok)
	assert.Equal(t, Cancelled, kept.Event.Outcome)

	_, ok = ToActionValue(NewSeries([]float64{1}))
	assert.False(t, ok)
}

func TestComputeParamWidensIntsToNumbers(t *testing.T) {
	widened, ok := ToComputeParam(NewIntParam(7))
	require.True(t, ok)
	assert.Equal(t, ParamNumber, widened.Type)
	assert.Equal(t, 7.0, widened.Number)

	_, ok = ToComputeParam(NewStringParam("x"))
	assert.False(t, ok)

	_, ok = ToComputeParam(NewEnumParam("variant"))
	assert.False(t, ok)
}
