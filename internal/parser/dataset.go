package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Supported dBase character sets.
//
// Census boundary files from ONS are plain ASCII, but Welsh names in older
// releases were written as Windows-1252 rather than UTF-8.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

// charsetDecoder returns the text decoder for the named encoding.
// A nil decoder means values are passed through unchanged.
func charsetDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case EncodingISO88591, "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported attribute encoding %q", name)
	}
}

// decodeFunc adapts a decoder to the string transform used by readAttributes
func decodeFunc(dec *encoding.Decoder) func(string) (string, error) {
	if dec == nil {
		return func(s string) (string, error) { return s, nil }
	}
	return dec.String
}

// CheckEncoding reports whether name is a supported attribute encoding
func CheckEncoding(name string) error {
	_, err := charsetDecoder(name)
	return err
}
