package svgserver

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
)

// shareAlphabet is the URL-safe alphabet used for shareable diagram links:
// ordinary base64's '+' and '/' would need escaping in a path segment, so
// this alphabet is the ten digits, then upper-case and lower-case letters,
// then '-' and '_'.
const shareAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var shareLinkEncoding = base64.NewEncoding(shareAlphabet).WithPadding(base64.NoPadding)

// encodeShareLink compresses text with DEFLATE and returns a URL-safe,
// unpadded base64 rendering of the compressed bytes, suitable for use as a
// path segment in the /svg/{encoded} route.
func encodeShareLink(text string) (string, error) {
	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating deflate writer: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return "", fmt.Errorf("writing deflate data: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing deflate writer: %w", err)
	}
	return shareLinkEncoding.EncodeToString(compressed.Bytes()), nil
}

// decodeShareLink reverses encodeShareLink.
func decodeShareLink(encoded string) (string, error) {
	data, err := shareLinkEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding share link: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(data))
	defer func() { _ = r.Close() }()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decompressing share link: %w", err)
	}
	return string(text), nil
}
