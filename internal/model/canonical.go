package model

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidDocument reports whether data is exactly one well-formed UTF-8 JSON
// value, optionally surrounded by whitespace.
func ValidDocument(data []byte) bool {
	if !utf8.Valid(data) || !JSON.Valid(data) {
		return false
	}

	iter := JSON.BorrowIterator(data)
	defer JSON.ReturnIterator(iter)

	iter.Skip()
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return false
	}

	// anything but end of input after the first value is trailing garbage
	iter.WhatIsNext()
	return errors.Is(iter.Error, io.EOF)
}

// canonicalValue rewrites numbers so that values equal after decoding share
// one encoding: integers by their decimal value, everything else as the
// shortest float64 text, always carrying a '.' or exponent so 1 and 1.0
// stay distinct.
func canonicalValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = canonicalValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = canonicalValue(e)
		}
		return out
	case json.Number:
		return canonicalNumber(t)
	default:
		return v
	}
}

func canonicalNumber(n json.Number) json.Number {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		if i, ok := new(big.Int).SetString(text, 10); ok {
			return json.Number(i.String())
		}
		return n
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return n
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return json.Number(s)
}
