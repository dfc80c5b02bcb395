package config

// Object is one stored content record. Records cross the storage boundary as
// JSON, so nested values are maps, slices, and primitives.
type Object map[string]any

// Clone deep-copies an Object so merged state never aliases shared defaults.
func Clone(o Object) Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Object:
		return map[string]any(Clone(t))
	case map[string]any:
		return map[string]any(Clone(t))
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// Merge overlays saved field-by-field on a deep copy of defaults. Fields
// absent from saved keep their default; fields unknown to the defaults
// survive, so partial or over-full records round-trip without loss.
func Merge(defaults, saved Object) Object {
	out := Clone(defaults)
	if out == nil {
		out = Object{}
	}
	for k, v := range saved {
		out[k] = cloneValue(v)
	}
	return out
}

// Policy binds a store key to its default record and the set of fields that
// may never be overridden. Locked fields are enforced twice: rejected in
// Update and re-asserted in Merge, since either path can be reached alone
// (a broadcast payload or direct store write never goes through Update).
type Policy struct {
	Key      string
	Defaults Object
	Locked   []string
}

func (p Policy) lockedField(field string) bool {
	for _, l := range p.Locked {
		if l == field {
			return true
		}
	}
	return false
}

// Merge combines a saved record with the policy defaults, then forces every
// locked field back to its default value.
func (p Policy) Merge(saved Object) Object {
	out := Merge(p.Defaults, saved)
	for _, field := range p.Locked {
		if v, ok := p.Defaults[field]; ok {
			out[field] = cloneValue(v)
		} else {
			delete(out, field)
		}
	}
	return out
}

// Update returns a copy of current with field set to value. Locked fields are
// rejected: current is returned unchanged and ok is false.
func (p Policy) Update(current Object, field string, value any) (Object, bool) {
	if p.lockedField(field) {
		return current, false
	}
	out := Clone(current)
	if out == nil {
		out = Clone(p.Defaults)
	}
	out[field] = cloneValue(value)
	return out, true
}
