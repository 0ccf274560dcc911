package secrets

import (
	"encoding/json"
	"fmt"

	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

// PacketFormat is the discriminator written to the _enc field.
const PacketFormat = "AESGCMv1"

// Packet is the self-describing envelope of an encrypted export.
// All binary fields are lowercase hex.
type Packet struct {
	Enc  string `json:"_enc"`
	Salt string `json:"s"`
	IV   string `json:"iv"`
	CT   string `json:"ct"`
}

// Marshal encodes the packet as compact JSON.
func (p Packet) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// ParsePacket decodes data as a packet and checks the discriminator.
// Returns ErrMalformedImport for non-JSON input and ErrUnknownFormat when
// the discriminator is missing or not AESGCMv1.
func ParsePacket(data []byte) (Packet, error) {
	env, err := Sniff(data)
	if err != nil {
		return Packet{}, err
	}
	if env.Format != FormatEncrypted {
		return Packet{}, kerrors.ErrUnknownFormat
	}
	return env.Packet, nil
}

// Format classifies import content.
type Format int

const (
	// FormatPlain is JSON without an _enc discriminator.
	FormatPlain Format = iota
	// FormatEncrypted is a packet whose discriminator is AESGCMv1.
	FormatEncrypted
	// FormatUnknownEnvelope is an object carrying an unrecognized _enc value.
	FormatUnknownEnvelope
)

func (f Format) String() string {
	switch f {
	case FormatEncrypted:
		return "encrypted"
	case FormatUnknownEnvelope:
		return "unknown"
	}
	return "plain"
}

// Envelope is the result of sniffing import content.
type Envelope struct {
	Format Format

	// Packet is set when Format is FormatEncrypted.
	Packet Packet

	// Value is the decoded JSON, used directly for plaintext imports.
	Value any

	// Discriminator is the raw _enc value for FormatUnknownEnvelope.
	Discriminator string
}

// Sniff parses data as JSON and decides whether it is an encrypted packet.
// Returns ErrMalformedImport if data is not JSON.
func Sniff(data []byte) (Envelope, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", kerrors.ErrMalformedImport, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return Envelope{Format: FormatPlain, Value: v}, nil
	}

	enc, present := obj["_enc"]
	if !present || enc == nil {
		return Envelope{Format: FormatPlain, Value: v}, nil
	}

	if s, ok := enc.(string); ok && s == PacketFormat {
		return Envelope{
			Format: FormatEncrypted,
			Value:  v,
			Packet: Packet{
				Enc:  s,
				Salt: field(obj, "s"),
				IV:   field(obj, "iv"),
				CT:   field(obj, "ct"),
			},
		}, nil
	}

	return Envelope{Format: FormatUnknownEnvelope, Value: v, Discriminator: fmt.Sprint(enc)}, nil
}

func field(obj map[string]any, name string) string {
	s, _ := obj[name].(string)
	return s
}
