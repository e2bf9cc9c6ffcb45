package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// structToJSON renders a protobuf Struct as the equivalent JSON object.
func structToJSON(s *structpb.Struct) ([]byte, error) {
	return protojson.Marshal(s)
}

// structFromValue converts any JSON-encodable value into a protobuf Struct
// with the same field names.
func structFromValue(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("to struct: %w", err)
	}
	return s, nil
}

// decodeBody fills v from a JSON or protobuf Struct body. Unknown fields
// are rejected in both encodings.
func decodeBody(r *http.Request, v any) error {
	var src io.Reader = io.LimitReader(r.Body, maxRequestBody)
	if isProtobuf(r) {
		msg, err := readProto(r)
		if err != nil {
			return err
		}
		data, err := structToJSON(msg)
		if err != nil {
			return err
		}
		src = bytes.NewReader(data)
	}

	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
