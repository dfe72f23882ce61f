package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringSet is a set of strings persisted as a JSON array. Used for skill
// sets and profile links. Membership is case-insensitive after Normalize.
type StringSet []string

// Normalize lowercases, trims and deduplicates the set, returning a sorted copy.
func (s StringSet) Normalize() StringSet {
	seen := make(map[string]bool, len(s))
	out := make(StringSet, 0, len(s))
	for _, v := range s {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Contains reports membership, ignoring case.
func (s StringSet) Contains(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, e := range s {
		if strings.ToLower(e) == v {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(src any) error {
	if src == nil {
		*s = StringSet{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("string set: %w", err)
	}
	if len(b) == 0 {
		*s = StringSet{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// AnswerSheet maps question IDs to the index of the chosen answer.
type AnswerSheet map[string]int

// Value implements driver.Valuer.
func (a AnswerSheet) Value() (driver.Value, error) {
	if a == nil {
		a = AnswerSheet{}
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AnswerSheet) Scan(src any) error {
	if src == nil {
		*a = AnswerSheet{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("answer sheet: %w", err)
	}
	if len(b) == 0 {
		*a = AnswerSheet{}
		return nil
	}
	return json.Unmarshal(b, a)
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}
