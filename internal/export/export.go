// Package export converts a parsed model into a schema-free document that
// can be written as JSON or as a binary protobuf Struct.
package export

import (
	"context"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ifcstep/ifcstep/internal/step"
)

// ToStruct describes the model as
//
//	{"header": [{"keyword": ..., "params": [...]}, ...],
//	 "data":   [{"id": 1, "keyword": ..., "params": [...]}, ...]}
//
// Omitted values become null, inherited values {"inherited": true},
// enumerations {"enum": name}, references {"ref": id} and typed values
// {"type": keyword, "params": [...]}. Strings are unescaped.
func ToStruct(ctx context.Context, m *step.Model) (*structpb.Struct, error) {
	header := []*structpb.Value{}
	entities := []step.Entity{&m.Header.Description, &m.Header.Name, &m.Header.Schema}
	for _, r := range m.Header.Extra {
		entities = append(entities, r)
	}
	for _, e := range entities {
		v, err := record(ctx, 0, e)
		if err != nil {
			return nil, err
		}
		header = append(header, v)
	}
	data := []*structpb.Value{}
	for id, e := range m.Data.All() {
		v, err := record(ctx, id, e)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"header": structpb.NewListValue(&structpb.ListValue{Values: header}),
		"data":   structpb.NewListValue(&structpb.ListValue{Values: data}),
	}}, nil
}

func record(ctx context.Context, id step.ID, e step.Entity) (*structpb.Value, error) {
	params, err := step.Params(ctx, e)
	if err != nil {
		return nil, err
	}
	fields := map[string]*structpb.Value{
		"keyword": structpb.NewStringValue(e.Keyword()),
		"params":  values(params),
	}
	if id.Valid() {
		fields["id"] = structpb.NewNumberValue(float64(id))
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
}

func values(params []step.Value) *structpb.Value {
	list := make([]*structpb.Value, 0, len(params))
	for _, p := range params {
		list = append(list, value(p))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: list})
}

func object(key string, v *structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{key: v}})
}

func value(p step.Value) *structpb.Value {
	switch v := p.(type) {
	case step.ValueInherited:
		return object("inherited", structpb.NewBoolValue(true))
	case step.ValueString:
		return structpb.NewStringValue(step.Label(v.Text).Text())
	case step.ValueInteger:
		n, err := strconv.ParseInt(v.Text, 10, 64)
		if err != nil {
			return structpb.NewStringValue(v.Text)
		}
		return structpb.NewNumberValue(float64(n))
	case step.ValueReal:
		n, err := step.ParseReal(v.Text)
		if err != nil {
			return structpb.NewStringValue(v.Text)
		}
		return structpb.NewNumberValue(n)
	case step.ValueEnum:
		return object("enum", structpb.NewStringValue(v.Name))
	case step.ValueRef:
		return object("ref", structpb.NewNumberValue(float64(v.ID)))
	case step.ValueList:
		return values(v.Items)
	case step.ValueTyped:
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"type":   structpb.NewStringValue(v.Keyword),
			"params": values(v.Params),
		}})
	default:
		return structpb.NewNullValue()
	}
}

// MarshalJSON writes the ToStruct form as indented JSON.
func MarshalJSON(ctx context.Context, m *step.Model) ([]byte, error) {
	st, err := ToStruct(ctx, m)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
}

// MarshalBinary writes the ToStruct form in the protobuf wire format. Map
// keys are sorted so equal models give equal bytes.
func MarshalBinary(ctx context.Context, m *step.Model) ([]byte, error) {
	st, err := ToStruct(ctx, m)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(st)
}
