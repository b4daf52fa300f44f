package sessionstore

import (
	"encoding/json"

	"github.com/dmitrijs2005/folio/internal/cryptox"
)

// codec is the typed boundary between session values and stored bytes.
type codec interface {
	encode(v any) ([]byte, error)
	decode(b []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) encode(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) decode(b []byte, v any) error { return json.Unmarshal(b, v) }

type sealedCodec struct {
	key []byte
}

func (c sealedCodec) encode(v any) ([]byte, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return cryptox.Seal(plain, c.key)
}

func (c sealedCodec) decode(b []byte, v any) error {
	plain, err := cryptox.Open(b, c.key)
	if err != nil {
		return err
	}
	return json.Unmarshal(plain, v)
}
