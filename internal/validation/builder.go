package validation

// Builder assembles the ordered validators for one field. Methods return a
// new Builder and never mutate the receiver.
type Builder struct {
	value      any
	field      string
	validators []Validator
}

// Of starts a chain for value, reporting failures under field.
func Of(value any, field string) Builder {
	return Builder{value: value, field: field}
}

func (b Builder) with(v Validator) Builder {
	next := make([]Validator, len(b.validators), len(b.validators)+1)
	copy(next, b.validators)
	b.validators = append(next, v)
	return b
}

// Required appends RequiredString for string values and Required otherwise.
func (b Builder) Required() Builder {
	if s, ok := b.value.(string); ok {
		return b.with(RequiredString(b.field, s))
	}
	return b.with(Required(b.field, b.value))
}

func (b Builder) MinLength(min int) Builder {
	return b.with(MinLength(b.field, b.value, min))
}

func (b Builder) Email() Builder {
	return b.with(EmailFormat(b.value))
}

func (b Builder) Build() []Validator {
	out := make([]Validator, len(b.validators))
	copy(out, b.validators)
	return out
}
