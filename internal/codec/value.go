package codec

import (
	"fmt"

	"scenelink/internal/domain"
)

// valueEnvelope is the stored form of every attribute value
type valueEnvelope struct {
	Kind    domain.ValueKind `cbor:"k"`
	Payload RawMessage       `cbor:"v"`
}

type linkWire struct {
	Target string   `cbor:"target"`
	Root   []string `cbor:"root"`
	Time   *float64 `cbor:"time,omitempty"`
}

type objectWire struct {
	Type  string     `cbor:"type"`
	Bound [6]float64 `cbor:"bound"`
	Data  []byte     `cbor:"data"`
}

// EncodeValue encodes an attribute value with its kind tag
func EncodeValue(v domain.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot encode nil value")
	}

	var payload any
	switch tv := v.(type) {
	case domain.Bool:
		payload = bool(tv)
	case domain.Int:
		payload = int64(tv)
	case domain.Float:
		payload = float64(tv)
	case domain.String:
		payload = string(tv)
	case domain.Strings:
		payload = []string(tv)
	case domain.Vector:
		payload = [3]float64{tv.X, tv.Y, tv.Z}
	case domain.Bound:
		payload = boxArray(domain.Box3(tv))
	case domain.Matrix:
		payload = [16]float64(tv)
	case domain.Blob:
		payload = []byte(tv)
	case domain.LinkDescriptor:
		if err := tv.Validate(); err != nil {
			return nil, err
		}
		payload = linkWire{Target: tv.Target, Root: []string(tv.Root), Time: tv.Time}
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}

	raw, err := Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", v.Kind(), err)
	}
	return Marshal(valueEnvelope{Kind: v.Kind(), Payload: raw})
}

// DecodeValue is the inverse of EncodeValue
func DecodeValue(data []byte) (domain.Value, error) {
	var env valueEnvelope
	if err := Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode value envelope: %w", err)
	}

	var (
		v   domain.Value
		err error
	)
	switch env.Kind {
	case domain.KindBool:
		var b bool
		err = Unmarshal(env.Payload, &b)
		v = domain.Bool(b)
	case domain.KindInt:
		var i int64
		err = Unmarshal(env.Payload, &i)
		v = domain.Int(i)
	case domain.KindFloat:
		var f float64
		err = Unmarshal(env.Payload, &f)
		v = domain.Float(f)
	case domain.KindString:
		var s string
		err = Unmarshal(env.Payload, &s)
		v = domain.String(s)
	case domain.KindStrings:
		var ss []string
		err = Unmarshal(env.Payload, &ss)
		v = domain.Strings(ss)
	case domain.KindVector:
		var a [3]float64
		err = Unmarshal(env.Payload, &a)
		v = domain.Vector{X: a[0], Y: a[1], Z: a[2]}
	case domain.KindBound:
		var a [6]float64
		err = Unmarshal(env.Payload, &a)
		v = domain.Bound(arrayBox(a))
	case domain.KindMatrix:
		var m [16]float64
		err = Unmarshal(env.Payload, &m)
		v = domain.Matrix(m)
	case domain.KindBlob:
		var b []byte
		err = Unmarshal(env.Payload, &b)
		v = domain.Blob(b)
	case domain.KindLink:
		v, err = decodeLink(env.Payload)
	default:
		return nil, fmt.Errorf("unknown value kind %d", env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	return v, nil
}

func decodeLink(raw []byte) (domain.LinkDescriptor, error) {
	var w linkWire
	if err := Unmarshal(raw, &w); err != nil {
		return domain.LinkDescriptor{}, err
	}
	root := domain.Path(w.Root)
	if root == nil {
		root = domain.Path{}
	}
	d := domain.LinkDescriptor{Target: w.Target, Root: root, Time: w.Time}
	if err := d.Validate(); err != nil {
		return domain.LinkDescriptor{}, err
	}
	return d, nil
}

// EncodeObject encodes an object payload
func EncodeObject(o domain.Object) ([]byte, error) {
	return Marshal(objectWire{Type: o.Type, Bound: boxArray(o.Bound), Data: o.Data})
}

// DecodeObject is the inverse of EncodeObject
func DecodeObject(data []byte) (domain.Object, error) {
	var w objectWire
	if err := Unmarshal(data, &w); err != nil {
		return domain.Object{}, fmt.Errorf("decode object: %w", err)
	}
	return domain.Object{Type: w.Type, Bound: arrayBox(w.Bound), Data: w.Data}, nil
}

// EncodeBound encodes a bound sample
func EncodeBound(b domain.Box3) ([]byte, error) {
	return Marshal(boxArray(b))
}

// DecodeBound is the inverse of EncodeBound
func DecodeBound(data []byte) (domain.Box3, error) {
	var a [6]float64
	if err := Unmarshal(data, &a); err != nil {
		return domain.Box3{}, fmt.Errorf("decode bound: %w", err)
	}
	return arrayBox(a), nil
}

// EncodeTransform encodes a transform sample
func EncodeTransform(m domain.M44) ([]byte, error) {
	return Marshal([16]float64(m))
}

// DecodeTransform is the inverse of EncodeTransform
func DecodeTransform(data []byte) (domain.M44, error) {
	var m [16]float64
	if err := Unmarshal(data, &m); err != nil {
		return domain.M44{}, fmt.Errorf("decode transform: %w", err)
	}
	return domain.M44(m), nil
}

// Empty boxes carry infinities, which CBOR encodes exactly.
func boxArray(b domain.Box3) [6]float64 {
	return [6]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

func arrayBox(a [6]float64) domain.Box3 {
	return domain.Box3{
		Min: domain.V3{X: a[0], Y: a[1], Z: a[2]},
		Max: domain.V3{X: a[3], Y: a[4], Z: a[5]},
	}
}
