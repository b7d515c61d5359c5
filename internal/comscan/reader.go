package comscan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// progIDSubkey is the child key holding a registration's ProgID.
const progIDSubkey = "ProgID"

// errMalformedCLSID marks a child key whose name does not parse as a GUID.
var errMalformedCLSID = errors.New("subkey name is not a valid CLSID")

// valueError marks a registration whose values could not be read (access
// denied, wrong value type). The key is counted as failed and excluded.
type valueError struct {
	clsid string
	what  string
	err   error
}

func (e *valueError) Error() string {
	return fmt.Sprintf("read %s of %s: %v", e.what, e.clsid, e.err)
}

func (e *valueError) Unwrap() error { return e.err }

// readEntry reads one CLSID registration from a child of the CLSID root.
// The key name is validated as a GUID and normalized to the canonical
// upper-case braced form so the same class deduplicates across views
// regardless of how it was registered.
func readEntry(parent Key, name string, view View) (Entry, error) {
	id, err := uuid.Parse(name)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", errMalformedCLSID, name)
	}
	clsid := "{" + strings.ToUpper(id.String()) + "}"

	key, err := parent.OpenSubkey(name)
	if err != nil {
		return Entry{}, &valueError{clsid: clsid, what: "key", err: err}
	}
	defer key.Close()

	description, err := key.DefaultValue()
	if err != nil && !errors.Is(err, ErrNotExist) {
		return Entry{}, &valueError{clsid: clsid, what: "description", err: err}
	}

	progID, err := readProgID(key)
	if err != nil {
		return Entry{}, &valueError{clsid: clsid, what: "ProgID", err: err}
	}

	return Entry{
		CLSID:       clsid,
		ProgID:      progID,
		Description: description,
		Views:       NewViewSet(view),
	}, nil
}

// readProgID reads the default value of the ProgID child key. A missing or
// unopenable ProgID key is the normal "no ProgID" case, not an error; only
// a value read failure on an opened key is reported.
func readProgID(key Key) (string, error) {
	pk, err := key.OpenSubkey(progIDSubkey)
	if err != nil {
		return "", nil
	}
	defer pk.Close()

	v, err := pk.DefaultValue()
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}
