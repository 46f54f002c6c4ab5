package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a book transaction.
type Status int16

const (
	StatusBorrowed Status = 1
	StatusReturned Status = 2
	StatusLost     Status = 3
)

var statusNames = map[Status]string{
	StatusBorrowed: "borrowed",
	StatusReturned: "returned",
	StatusLost:     "lost",
}

// transitions lists the allowed next states in order; terminal states have none.
var transitions = map[Status][]Status{
	StatusBorrowed: {StatusReturned, StatusLost},
	StatusReturned: nil,
	StatusLost:     nil,
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanExtend reports whether the due date may still move. Extension keeps the status.
func (s Status) CanExtend() bool {
	return s.Valid() && !s.IsTerminal()
}

// ParseStatus accepts either the numeric code or the name.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		if s := Status(n); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("unknown status %d", n)
	}
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", raw)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		raw = strconv.Itoa(n)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *Status) Scan(src any) error {
	n, err := scanInt(src)
	if err != nil {
		return fmt.Errorf("scan status: %w", err)
	}
	*s = Status(n)
	return nil
}

// Action is the kind of an audit trail entry. The first three codes mirror Status.
type Action int16

const (
	ActionBorrow Action = 1
	ActionReturn Action = 2
	ActionLost   Action = 3
	ActionExtend Action = 4
)

var actionNames = map[Action]string{
	ActionBorrow: "borrow",
	ActionReturn: "return",
	ActionLost:   "lost",
	ActionExtend: "extend",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "action(" + strconv.Itoa(int(a)) + ")"
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a Action) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *Action) Scan(src any) error {
	n, err := scanInt(src)
	if err != nil {
		return fmt.Errorf("scan action: %w", err)
	}
	*a = Action(n)
	return nil
}

func scanInt(src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", src)
	}
}
