package symbolic

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes the exact tree of e. Decoding it with ParseJSON yields a
// tree with the same structural key.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// Tree returns the JSON object form of e, for embedding in larger payloads.
func Tree(e Expr) map[string]interface{} { return e.toJSON() }

func ParseJSON(s string) (Expr, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(data)
}

// FromJSON rebuilds an unevaluated tree from its object form.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subList := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "add":
		terms, err := subList("terms")
		if err != nil {
			return nil, err
		}
		return &Add{terms: terms}, nil

	case "mul":
		factors, err := subList("factors")
		if err != nil {
			return nil, err
		}
		return &Mul{factors: factors}, nil

	case "pow":
		base, err := sub("base")
		if err != nil {
			return nil, err
		}
		exp, err := sub("exp")
		if err != nil {
			return nil, err
		}
		return &Pow{base: base, exp: exp}, nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if !knownFuncs[name] {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return funcOf(name, arg), nil

	case "derivative", "integral":
		v, err := subString("var")
		if err != nil {
			return nil, err
		}
		inner, err := sub("expr")
		if err != nil {
			return nil, err
		}
		if typ == "derivative" {
			return &Derivative{expr: inner, varName: v}, nil
		}
		return &Integral{expr: inner, varName: v}, nil

	case "limit":
		v, err := subString("var")
		if err != nil {
			return nil, err
		}
		inner, err := sub("expr")
		if err != nil {
			return nil, err
		}
		point, err := sub("point")
		if err != nil {
			return nil, err
		}
		return &Limit{expr: inner, varName: v, point: point}, nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
