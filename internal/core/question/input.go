package question

// Input is the variables payload of a save mutation.
type Input map[string]any

// Merge returns a new Input holding the entries of i overlaid with other.
func (i Input) Merge(other Input) Input {
	out := make(Input, len(i)+len(other))
	for k, v := range i {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// CommonInput returns the fields shared by every save mutation.
func CommonInput(q Question, token string) Input {
	return Input{
		"label":            q.Label,
		"slug":             q.Slug,
		"description":      q.Description,
		"isRequired":       q.IsRequired,
		"isHidden":         q.IsHidden,
		"clientMutationId": token,
	}
}

// TextInput extracts the TextQuestion payload.
func TextInput(q Question) Input {
	return Input{"maxLength": intValue(q.MaxLength)}
}

// TextareaInput extracts the TextareaQuestion payload.
func TextareaInput(q Question) Input {
	return Input{"maxLength": intValue(q.MaxLength)}
}

// IntegerInput extracts the IntegerQuestion payload.
func IntegerInput(q Question) Input {
	return Input{
		"minValue": intValue(q.IntegerMinValue),
		"maxValue": intValue(q.IntegerMaxValue),
	}
}

// FloatInput extracts the FloatQuestion payload.
func FloatInput(q Question) Input {
	return Input{
		"minValue": floatValue(q.FloatMinValue),
		"maxValue": floatValue(q.FloatMaxValue),
	}
}

// CheckboxInput extracts the CheckboxQuestion payload.
func CheckboxInput(q Question) Input {
	return Input{"options": q.OptionSlugs()}
}

// RadioInput extracts the RadioQuestion payload.
func RadioInput(q Question) Input {
	return Input{"options": q.OptionSlugs()}
}

// OptionInput returns the upsert payload of a single option.
func OptionInput(o Option, token string) Input {
	return Input{
		"slug":             o.Slug,
		"label":            o.Label,
		"clientMutationId": token,
	}
}

// intValue keeps absent numbers as an untyped nil so they encode as null.
func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
