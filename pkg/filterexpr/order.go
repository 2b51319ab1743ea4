package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/samber/lo"
)

type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (o OrderSchema) validate() error {
	switch {
	case o.DefaultPrimary == "":
		return errors.New("order schema default primary key required")
	case o.FallbackKey == "":
		return errors.New("order schema fallback key required")
	}
	if _, ok := o.Fields[o.DefaultPrimary]; !ok {
		return fmt.Errorf("order key %q missing from schema fields", o.DefaultPrimary)
	}
	if _, ok := o.Fields[o.FallbackKey]; !ok {
		return fmt.Errorf("fallback order key %q missing from schema fields", o.FallbackKey)
	}
	return nil
}

type orderKey struct {
	key  string
	desc bool
}

// parseOrderSegment reads "key" or "key asc|desc".
func parseOrderSegment(seg string, schema OrderSchema) (orderKey, error) {
	parts := strings.Fields(seg)
	key := parts[0]
	if _, ok := schema.Fields[key]; !ok {
		return orderKey{}, fmt.Errorf("field %q cannot be used for ordering", key)
	}
	if len(parts) > 2 {
		return orderKey{}, fmt.Errorf("invalid order segment %q", seg)
	}
	if len(parts) == 1 {
		return orderKey{key: key}, nil
	}
	switch strings.ToLower(parts[1]) {
	case "asc":
		return orderKey{key: key}, nil
	case "desc":
		return orderKey{key: key, desc: true}, nil
	default:
		return orderKey{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
	}
}

// parseOrderBy resolves at most two order keys. Missing keys come from the
// schema defaults and the secondary key never repeats the primary one.
func parseOrderBy(raw string, schema OrderSchema) (orderParams, error) {
	if err := schema.validate(); err != nil {
		return orderParams{}, err
	}

	var keys []orderKey
	for _, seg := range strings.Split(raw, ",") {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		k, err := parseOrderSegment(seg, schema)
		if err != nil {
			return orderParams{}, err
		}
		if lo.ContainsBy(keys, func(prev orderKey) bool { return prev.key == k.key }) {
			return orderParams{}, fmt.Errorf("duplicate order key %q", k.key)
		}
		if len(keys) == 2 {
			return orderParams{}, errors.New("order_by supports at most two keys")
		}
		keys = append(keys, k)
	}

	primary := orderKey{key: schema.DefaultPrimary, desc: schema.DefaultPrimaryDesc}
	secondary := orderKey{key: schema.FallbackKey, desc: schema.FallbackDesc}
	if len(keys) > 0 {
		primary = keys[0]
	}
	if len(keys) > 1 {
		secondary = keys[1]
	}

	if secondary.key == primary.key {
		// take the first other key alphabetically
		others := lo.Without(lo.Keys(schema.Fields), primary.key)
		if len(others) == 0 {
			return orderParams{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
		slices.Sort(others)
		secondary = orderKey{key: others[0]}
	}

	return orderParams{
		PrimaryKey:    primary.key,
		PrimaryDesc:   primary.desc,
		SecondaryKey:  secondary.key,
		SecondaryDesc: secondary.desc,
	}, nil
}

func setOrderParams(binding any, ord orderParams) error {
	rv := reflect.ValueOf(binding)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("binding must be a non-nil pointer")
	}
	target := rv.Elem()
	if target.Kind() != reflect.Struct {
		return errors.New("binding must point to a struct")
	}

	fields := []struct {
		name  string
		value any
	}{
		{"PrimaryKey", ord.PrimaryKey},
		{"PrimaryDesc", ord.PrimaryDesc},
		{"SecondaryKey", ord.SecondaryKey},
		{"SecondaryDesc", ord.SecondaryDesc},
	}
	for _, f := range fields {
		if err := setConvertibleField(target, f.name, reflect.ValueOf(f.value)); err != nil {
			return err
		}
	}
	return nil
}

func setConvertibleField(target reflect.Value, name string, value reflect.Value) error {
	field := target.FieldByName(name)
	switch {
	case !field.IsValid():
		return fmt.Errorf("params struct %s has no field named %q", target.Type(), name)
	case !field.CanSet():
		return fmt.Errorf("cannot set field %q on params struct", name)
	case field.Kind() == reflect.Interface:
		field.Set(value)
		return nil
	}

	dst := deref(field)
	if !value.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf("field %q must be %s-compatible, got %s", name, dst.Type(), value.Type())
	}
	dst.Set(value.Convert(dst.Type()))
	return nil
}

// OrderTerm is one resolved ORDER BY entry.
type OrderTerm struct {
	Expr  string
	Desc  bool
	Nulls string
}

// Term resolves a bound order key against the schema.
func (o OrderSchema) Term(key string, desc bool) (OrderTerm, error) {
	field, ok := o.Fields[key]
	if !ok {
		return OrderTerm{}, fmt.Errorf("field %q cannot be used for ordering", key)
	}
	expr := field.Expr
	if expr == "" {
		expr = key
	}
	return OrderTerm{Expr: expr, Desc: desc, Nulls: strings.ToLower(field.Nulls)}, nil
}
