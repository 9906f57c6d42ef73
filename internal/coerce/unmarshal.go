package coerce

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/parser"
)

var (
	jsonObjectType = reflect.TypeOf(models.JSONObject(nil))
	jsonArrayType  = reflect.TypeOf(models.JSONArray(nil))
)

// Unmarshal decodes data into dst, coercing every field the way Value does.
// Fields absent from the document keep their current value.
func Unmarshal(data []byte, dst any) error {
	ir, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return assign(ir.Root, dst)
}

func assign(v models.JSONValue, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("coerce: destination must be a non-nil pointer, got %T", dst)
	}
	return set(v, rv.Elem())
}

func set(v models.JSONValue, rv reflect.Value) error {
	switch rv.Type() {
	case jsonObjectType:
		rv.Set(reflect.ValueOf(toObject(v)))
		return nil
	case jsonArrayType:
		rv.Set(reflect.ValueOf(toArray(v)))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		rv.SetBool(toBool(v))
	case reflect.Int8:
		rv.SetInt(int64(toInteger(v, models.TargetInt8).(int8)))
	case reflect.Int16:
		rv.SetInt(int64(toInteger(v, models.TargetInt16).(int16)))
	case reflect.Int32:
		rv.SetInt(int64(toInteger(v, models.TargetInt32).(int32)))
	case reflect.Int, reflect.Int64:
		rv.SetInt(toInteger(v, models.TargetInt64).(int64))
	case reflect.Float32:
		rv.SetFloat(float64(toFloat(v, models.TargetFloat32).(float32)))
	case reflect.Float64:
		rv.SetFloat(toFloat(v, models.TargetFloat64).(float64))
	case reflect.String:
		rv.SetString(toText(v))
	case reflect.Interface:
		if v == nil {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		rv.Set(reflect.ValueOf(v))
	case reflect.Map:
		return setMap(toObject(v), rv)
	case reflect.Slice:
		return setSlice(toArray(v), rv)
	case reflect.Struct:
		return setStruct(toObject(v), rv)
	case reflect.Pointer:
		return setPointer(v, rv)
	default:
		return fmt.Errorf("coerce: unsupported field type %s", rv.Type())
	}
	return nil
}

func setMap(obj models.JSONObject, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("coerce: unsupported map key type %s", rv.Type().Key())
	}
	if obj == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	m := reflect.MakeMapWithSize(rv.Type(), len(obj))
	for k, val := range obj {
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := set(val, elem); err != nil {
			return err
		}
		m.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), elem)
	}
	rv.Set(m)
	return nil
}

func setSlice(arr models.JSONArray, rv reflect.Value) error {
	if arr == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	s := reflect.MakeSlice(rv.Type(), len(arr), len(arr))
	for i, val := range arr {
		if err := set(val, s.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(s)
	return nil
}

func setStruct(obj models.JSONObject, rv reflect.Value) error {
	if obj == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := fieldName(field)
		if skip {
			continue
		}
		val, ok := obj[name]
		if !ok {
			continue
		}
		if err := set(val, rv.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func setPointer(v models.JSONValue, rv reflect.Value) error {
	if v == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Struct && elemType != jsonObjectType {
		obj := toObject(v)
		if obj == nil {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		v = obj
	}
	if rv.IsNil() {
		rv.Set(reflect.New(elemType))
	}
	return set(v, rv.Elem())
}

// fieldName resolves the JSON key for a struct field from its json tag.
func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, false
}
