package httpapi

import (
	"io"
	"mime"
	"net/http"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxRequestBody caps request bodies for both encodings. A full request
// form with Cyrillic text is well under 8 KiB.
const maxRequestBody = 64 << 10

const protobufContentType = "application/x-protobuf"

func isProtobufType(v string) bool {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	return mt == protobufContentType || mt == "application/protobuf"
}

// isProtobuf reports whether the request body is a protobuf Struct.
func isProtobuf(r *http.Request) bool {
	return isProtobufType(r.Header.Get("Content-Type"))
}

// wantsProtobuf reports whether the response should be protobuf. A
// protobuf request gets a protobuf response unless Accept says otherwise.
func wantsProtobuf(r *http.Request) bool {
	if accept := r.Header.Get("Accept"); accept != "" && accept != "*/*" {
		return isProtobufType(accept)
	}
	return isProtobuf(r)
}

func readProto(r *http.Request) (*structpb.Struct, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return nil, err
	}
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func writeProto(w http.ResponseWriter, status int, msg proto.Message) {
	data, err := proto.Marshal(msg)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", protobufContentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
