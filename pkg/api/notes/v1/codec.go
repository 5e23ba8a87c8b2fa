package notesv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype кодека: application/grpc+json
const CodecName = "json"

// Codec gRPC кодек, сериализующий сообщения в JSON.
// Регистрируется при импорте пакета, сервер выбирает его по content-subtype.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
