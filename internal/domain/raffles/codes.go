package raffles

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const (
	codeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeMinLength = 8
)

var ErrInvalidCode = errors.New("invalid ticket code")

// TicketCodes turns entry ids into short public ticket codes and back.
type TicketCodes struct {
	h *hashids.HashID
}

func NewTicketCodes(salt string) (*TicketCodes, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = codeMinLength
	hd.Alphabet = codeAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("ticket codes: %w", err)
	}
	return &TicketCodes{h: h}, nil
}

func (c *TicketCodes) Encode(entryID int64) (string, error) {
	return c.h.EncodeInt64([]int64{entryID})
}

func (c *TicketCodes) Decode(code string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(code)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidCode
	}
	return ids[0], nil
}

// Stamp fills in the public code of each entry.
func (c *TicketCodes) Stamp(entries ...*Entry) error {
	for _, e := range entries {
		code, err := c.Encode(e.ID)
		if err != nil {
			return err
		}
		e.Code = code
	}
	return nil
}
