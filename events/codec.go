package events

import (
	"github.com/fxamacker/cbor/v2"
)

// Codec serializes change log events deterministically. Events are hashed and
// compared byte wise by downstream indexers, so the encoding must be stable
// for identical inputs.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalEvent(e *ChangeLogEvent) ([]byte, error) {
	return c.enc.Marshal(e)
}

func (c Codec) UnmarshalEvent(data []byte) (*ChangeLogEvent, error) {
	e := &ChangeLogEvent{}
	if err := c.dec.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}
