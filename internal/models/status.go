package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Status is the publication state of a Post, stored as a two-letter code.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

var ErrInvalidStatus = errors.New("invalid post status")

var statusLabels = map[Status]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
}

// Statuses lists the stored codes in display order.
func Statuses() []Status { return []Status{StatusDraft, StatusPublished} }

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name, or "" for unknown codes.
func (s Status) Label() string { return statusLabels[s] }

func (s Status) String() string { return string(s) }

// ParseStatus accepts a stored code ("PB") or a label ("Published").
func ParseStatus(v string) (Status, error) {
	if s := Status(v); s.Valid() {
		return s, nil
	}
	for code, label := range statusLabels {
		if label == v {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

// Scan rejects codes outside the enumeration instead of loading them.
func (s *Status) Scan(src any) error {
	var v string
	switch x := src.(type) {
	case string:
		v = x
	case []byte:
		v = string(x)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidStatus)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, src)
	}
	if !Status(v).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	*s = Status(v)
	return nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}
