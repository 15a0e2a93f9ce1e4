package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDList is a JSON-encoded set of user ids (likes, room members). It
// never holds duplicates.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *IDList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (l IDList) Has(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present.
func (l IDList) Add(id uint) IDList {
	if l.Has(id) {
		return l
	}
	return append(l, id)
}

func (l IDList) Remove(id uint) IDList {
	out := l[:0]
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle adds id when absent and removes it when present. The second
// return value reports whether the id ended up in the list.
func (l IDList) Toggle(id uint) (IDList, bool) {
	if l.Has(id) {
		return l.Remove(id), false
	}
	return append(l, id), true
}

// StringList is a JSON-encoded list of strings (tags).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// MediaFile describes one uploaded attachment on a post.
type MediaFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
}

type MediaFileList []MediaFile

func (l MediaFileList) Value() (driver.Value, error) {
	if l == nil {
		l = MediaFileList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *MediaFileList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ReactionMap maps an emoji to the ids of users who reacted with it.
type ReactionMap map[string]IDList

func (m ReactionMap) Value() (driver.Value, error) {
	if m == nil {
		m = ReactionMap{}
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *ReactionMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
