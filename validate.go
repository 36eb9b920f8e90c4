package xcmd

// Validator checks a command before execution.
//
// Returns nil if valid, or a ValidationError if the command must be
// rejected. Validators must not depend on another validator's result.
type Validator[C Command] interface {
	Validate(command C) *ValidationError
}

// ValidatorFunc is an Adapter that lets a plain function satisfy Validator.
type ValidatorFunc[C Command] func(command C) *ValidationError

func (f ValidatorFunc[C]) Validate(command C) *ValidationError { return f(command) }

// Pipeline holds the ordered validators for a command kind.
//
// Validators run in registration order. The pipeline is a capability
// attached to a kind but is not consulted by Bus.Send; callers (or a
// Processor) invoke it explicitly.
type Pipeline[C Command] struct {
	validators []Validator[C]
}

// NewPipeline creates an empty validator pipeline.
func NewPipeline[C Command]() *Pipeline[C] {
	return &Pipeline[C]{}
}

// Add appends a validator. Registration order is evaluation order.
func (p *Pipeline[C]) Add(v Validator[C]) *Pipeline[C] {
	if v != nil {
		p.validators = append(p.validators, v)
	}
	return p
}

// AddFunc appends a plain-function validator.
func (p *Pipeline[C]) AddFunc(f func(command C) *ValidationError) *Pipeline[C] {
	if f != nil {
		p.validators = append(p.validators, ValidatorFunc[C](f))
	}
	return p
}

// Validate runs validators in registration order and returns the first
// error encountered, or nil if all pass (fail-fast).
func (p *Pipeline[C]) Validate(command C) *ValidationError {
	for _, v := range p.validators {
		if err := v.Validate(command); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll runs every validator regardless of earlier failures and
// returns all errors in registration order. Used to surface every problem
// at once, e.g. to a content-authoring UI. Returns nil when all pass.
func (p *Pipeline[C]) ValidateAll(command C) []*ValidationError {
	var errs []*ValidationError
	for _, v := range p.validators {
		if err := v.Validate(command); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Len returns the number of registered validators.
func (p *Pipeline[C]) Len() int { return len(p.validators) }
