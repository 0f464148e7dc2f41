package hcl_adapter

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// defineMap converts the value of the `defines` attribute into strings.
// Numbers and bools are rendered the way HCL would print them; null values
// become bare defines.
func defineMap(val cty.Value) (map[string]string, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("defines must be a map, got %s", ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("defines must be known at load time")
	}

	out := make(map[string]string, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		key := k.AsString()
		if v.IsNull() {
			out[key] = ""
			continue
		}
		if !v.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("define %q must be a string, number or bool, got %s", key, v.Type().FriendlyName())
		}
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("define %q: %w", key, err)
		}
		out[key] = str.AsString()
	}
	return out, nil
}
