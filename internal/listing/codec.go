package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/rotisserie/eris"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// Decode reads a flat JSON object of name → text, keeping key order.
// A repeated key keeps its first position and takes the last value.
func Decode(r io.Reader) (temple.Listing, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, eris.Wrap(err, "listing: read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, eris.Errorf("listing: expected '{', got %v", tok)
	}

	var out temple.Listing
	pos := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrap(err, "listing: read key")
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, eris.Errorf("listing: expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrapf(err, "listing: read value for %q", name)
		}
		text, ok := valTok.(string)
		if !ok {
			return nil, eris.Errorf("listing: value for %q is not a string", name)
		}

		if i, seen := pos[name]; seen {
			out[i].Text = text
			continue
		}
		pos[name] = len(out)
		out = append(out, temple.Entry{Name: name, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return nil, eris.Wrap(err, "listing: read closing token")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, eris.New("listing: trailing data after object")
	}

	return out, nil
}

// Encode writes l as a JSON object with 4-space indentation in listing order.
func Encode(w io.Writer, l temple.Listing) error {
	var buf bytes.Buffer
	if len(l) == 0 {
		buf.WriteString("{}\n")
	} else {
		buf.WriteString("{\n")
		for i, e := range l {
			buf.WriteString("    ")
			if err := writeString(&buf, e.Name); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeString(&buf, e.Text); err != nil {
				return err
			}
			if i < len(l)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("}\n")
	}

	_, err := w.Write(buf.Bytes())
	return eris.Wrap(err, "listing: write")
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return eris.Wrap(err, "listing: encode string")
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
