package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

type bom struct {
	mark []byte
	enc  encoding.Encoding // nil means the content is UTF-8 after the mark
}

var boms = []bom{
	{mark: []byte{0xEF, 0xBB, 0xBF}},
	{mark: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{mark: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet names onto decoders. Anything not listed falls back
// to Windows-1252, the usual encoding of bank exports from Windows tools.
var charsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8.
//
// A byte order mark decides first; then content that is already valid UTF-8
// passes through; then chardet guesses from the first few kilobytes.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.mark) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	if validUTF8(head, len(head) == sniffSize) {
		return br, nil
	}

	return transform.NewReader(br, guess(head).NewDecoder()), nil
}

func guess(head []byte) encoding.Encoding {
	res, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	if enc, ok := charsets[res.Charset]; ok {
		return enc
	}

	return charmap.Windows1252
}

// validUTF8 ignores a rune cut in half at the end of a truncated sniff.
func validUTF8(head []byte, truncated bool) bool {
	if truncated {
		for i := 1; i < utf8.UTFMax && i <= len(head); i++ {
			tail := head[len(head)-i:]
			if !utf8.RuneStart(tail[0]) {
				continue
			}

			if !utf8.FullRune(tail) {
				head = head[:len(head)-i]
			}

			break
		}
	}

	return utf8.Valid(head)
}
