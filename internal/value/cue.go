package value

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DecodeCUE compiles CUE source and converts the resulting value.
// The source must be concrete; incomplete values are rejected.
func DecodeCUE(src []byte, opts DecodeOptions) (Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("decode cue: %w", err)
	}
	out, err := FromCUE(v, opts)
	if err != nil {
		return nil, fmt.Errorf("decode cue: %w", err)
	}
	return out, nil
}

// FromCUE converts a concrete cue.Value. Struct fields are visited in
// declaration order; definitions, hidden fields and optional fields are skipped.
func FromCUE(v cue.Value, opts DecodeOptions) (Value, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	switch v.Kind() {
	case cue.NullKind:
		return Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return Bool(b), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return Int(n), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return Double(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return decodeString(s, opts), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		arr := Array{}
		for iter.Next() {
			elem, err := FromCUE(iter.Value(), opts)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", len(arr), err)
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		m := &Map{}
		for iter.Next() {
			label := iter.Label()
			elem, err := FromCUE(iter.Value(), opts)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", label, err)
			}
			m.Set(label, elem)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported cue kind %v", v.Kind())
	}
}
