// Package pix reads and writes BR Code payloads (EMV QRCPS-MPM) used by PIX charges.
package pix

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"ingressos_checkout/internal/domain/entities"
)

const (
	TagPayloadFormat  = "00"
	TagMerchantAcct   = "26"
	TagCategoryCode   = "52"
	TagCurrency       = "53"
	TagAmount         = "54"
	TagCountry        = "58"
	TagMerchantName   = "59"
	TagMerchantCity   = "60"
	TagAdditionalData = "62"
	TagCRC            = "63"

	subTagGUI  = "00"
	subTagKey  = "01"
	subTagTxID = "05"

	pixGUI          = "br.gov.bcb.pix"
	currencyBRL     = "986"
	maxNameLength   = 25
	maxCityLength   = 15
	maxTxIDLength   = 25
	crcFieldPrefix  = TagCRC + "04"
	tlvHeaderLength = 4
)

type Field struct {
	Tag   string
	Value string
}

// Payload is a decoded BR Code. Fields keeps the top-level order of the
// original string; the CRC field is not included.
type Payload struct {
	Fields       []Field
	MerchantName string
	MerchantCity string
	Amount       string
	TxID         string
	Key          string
}

func (p Payload) Get(tag string) (string, bool) {
	for _, f := range p.Fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// Decode parses a BR Code and verifies its trailing CRC16.
func Decode(raw string) (Payload, error) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, crcFieldPrefix)
	if idx < 0 || len(raw) != idx+len(crcFieldPrefix)+4 {
		return Payload{}, &entities.DecodeError{Reason: "missing crc field"}
	}
	body := raw[:idx+len(crcFieldPrefix)]
	want := strings.ToUpper(raw[idx+len(crcFieldPrefix):])
	if got := fmt.Sprintf("%04X", CRC16([]byte(body))); got != want {
		return Payload{}, &entities.DecodeError{Reason: fmt.Sprintf("crc mismatch: got %s want %s", got, want)}
	}

	fields, err := parseTLV(raw[:idx])
	if err != nil {
		return Payload{}, err
	}
	if len(fields) == 0 || fields[0].Tag != TagPayloadFormat || fields[0].Value != "01" {
		return Payload{}, &entities.DecodeError{Reason: "payload format indicator must be 01"}
	}

	p := Payload{Fields: fields}
	for _, f := range fields {
		switch f.Tag {
		case TagMerchantName:
			p.MerchantName = f.Value
		case TagMerchantCity:
			p.MerchantCity = f.Value
		case TagAmount:
			p.Amount = f.Value
		case TagMerchantAcct:
			if sub, err := parseTLV(f.Value); err == nil {
				p.Key = lookup(sub, subTagKey)
			}
		case TagAdditionalData:
			if sub, err := parseTLV(f.Value); err == nil {
				p.TxID = lookup(sub, subTagTxID)
			}
		}
	}
	return p, nil
}

// Encode serializes fields in the given order and appends the CRC field.
func Encode(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(tlv(f.Tag, f.Value))
	}
	b.WriteString(crcFieldPrefix)
	return b.String() + fmt.Sprintf("%04X", CRC16([]byte(b.String())))
}

// Charge describes a static PIX charge with a fixed amount.
type Charge struct {
	Key          string
	MerchantName string
	MerchantCity string
	Amount       float64
	TxID         string
}

func (c Charge) Payload() string {
	txID := truncate(c.TxID, maxTxIDLength)
	if txID == "" {
		txID = "***"
	}
	fields := []Field{
		{Tag: TagPayloadFormat, Value: "01"},
		{Tag: TagMerchantAcct, Value: tlv(subTagGUI, pixGUI) + tlv(subTagKey, c.Key)},
		{Tag: TagCategoryCode, Value: "0000"},
		{Tag: TagCurrency, Value: currencyBRL},
	}
	if c.Amount > 0 {
		fields = append(fields, Field{Tag: TagAmount, Value: strconv.FormatFloat(c.Amount, 'f', 2, 64)})
	}
	fields = append(fields,
		Field{Tag: TagCountry, Value: "BR"},
		Field{Tag: TagMerchantName, Value: truncate(c.MerchantName, maxNameLength)},
		Field{Tag: TagMerchantCity, Value: truncate(c.MerchantCity, maxCityLength)},
		Field{Tag: TagAdditionalData, Value: tlv(subTagTxID, txID)},
	)
	return Encode(fields)
}

// CRC16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum used by BR Codes.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func parseTLV(s string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(s); {
		if len(s)-i < tlvHeaderLength {
			return nil, &entities.DecodeError{Reason: fmt.Sprintf("truncated field header at offset %d", i)}
		}
		tag := s[i : i+2]
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || n < 0 {
			return nil, &entities.DecodeError{Reason: fmt.Sprintf("invalid length for tag %s", tag)}
		}
		start := i + tlvHeaderLength
		if start+n > len(s) {
			return nil, &entities.DecodeError{Reason: fmt.Sprintf("value of tag %s overflows payload", tag)}
		}
		fields = append(fields, Field{Tag: tag, Value: s[start : start+n]})
		i = start + n
	}
	return fields, nil
}

func lookup(fields []Field, tag string) string {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	for len(s) > n {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

