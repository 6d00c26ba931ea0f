package value

// Per-kind projections restrict the universal value universe to the subset
// each primitive kind may traffic in. Illegal conversions are surfaced as a
// false second return so the executor can report them without panicking.

// ToComputeValue admits Number, Series, and Bool. Computes never see events
// or strings.
func ToComputeValue(v Value) (Value, bool) {
	switch v.Type {
	case TypeNumber, TypeSeries, TypeBool:
		return v, true
	default:
		return Value{}, false
	}
}

// ToTriggerValue admits Number, Series, Bool, and trigger-origin events.
// Action outcomes never flow back into triggers.
func ToTriggerValue(v Value) (Value, bool) {
	switch v.Type {
	case TypeNumber, TypeSeries, TypeBool:
		return v, true
	case TypeEvent:
		if v.Event.Origin == OriginTrigger {
			return v, true
		}
		return Value{}, false
	default:
		return Value{}, false
	}
}

// ToActionValue admits events, numbers, bools, and strings. A trigger
// emission crossing into the action universe becomes Attempted: the action
// layer reasons about outcomes, not emissions. Series never reach actions.
func ToActionValue(v Value) (Value, bool) {
	switch v.Type {
	case TypeEvent:
		if v.Event.Origin == OriginTrigger {
			return NewActionEvent(Attempted), true
		}
		return v, true
	case TypeNumber, TypeBool, TypeString:
		return v, true
	default:
		return Value{}, false
	}
}

// ToComputeParam admits Int (widened to Number), Number, and Bool literals
// into the compute parameter universe.
func ToComputeParam(p Param) (Param, bool) {
	switch p.Type {
	case ParamInt:
		return NewNumberParam(float64(p.Int)), true
	case ParamNumber, ParamBool:
		return p, true
	default:
		return Param{}, false
	}
}
