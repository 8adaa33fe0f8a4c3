package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// FlexTime normalizes the heterogeneous timestamp encodings found in legacy
// documents: a native datetime, an ISO-ish string, a numeric epoch, or an
// absent field. Downstream sorting and comparison code only ever sees one of
// three states and never parses raw values itself.
type FlexTime struct {
	t     time.Time
	state timeState
}

type timeState uint8

const (
	timeAbsent timeState = iota
	timeValid
	timeMalformed
)

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewFlexTime wraps a known-good time value.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{t: t.UTC(), state: timeValid}
}

// Valid reports whether the field carried a parseable timestamp.
func (ft FlexTime) Valid() bool { return ft.state == timeValid }

// Absent reports whether the field was missing entirely.
func (ft FlexTime) Absent() bool { return ft.state == timeAbsent }

// Malformed reports whether the field was present but unparseable.
func (ft FlexTime) Malformed() bool { return ft.state == timeMalformed }

// Time returns the parsed value; zero when not Valid.
func (ft FlexTime) Time() time.Time {
	if ft.state != timeValid {
		return time.Time{}
	}
	return ft.t
}

// UnixMilli returns the value in epoch milliseconds, or 0 when not Valid.
func (ft FlexTime) UnixMilli() int64 {
	if ft.state != timeValid {
		return 0
	}
	return ft.t.UnixMilli()
}

func parseFlexString(s string) FlexTime {
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewFlexTime(t)
		}
	}
	return FlexTime{state: timeMalformed}
}

func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if ft.state != timeValid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(ft.t.Format(time.RFC3339))), nil
}

func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*ft = FlexTime{state: timeAbsent}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		*ft = parseFlexString(unquoted)
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*ft = NewFlexTime(time.UnixMilli(ms))
		return nil
	}
	*ft = FlexTime{state: timeMalformed}
	return nil
}

func (ft FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if ft.state != timeValid {
		return bsontype.Null, nil, nil
	}
	return bsontype.DateTime, bsoncore.AppendTime(nil, ft.t), nil
}

func (ft *FlexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		*ft = FlexTime{state: timeAbsent}
	case bsontype.DateTime:
		if tm, ok := rv.TimeOK(); ok {
			*ft = NewFlexTime(tm)
		} else {
			*ft = FlexTime{state: timeMalformed}
		}
	case bsontype.String:
		s, ok := rv.StringValueOK()
		if !ok {
			*ft = FlexTime{state: timeMalformed}
			return nil
		}
		*ft = parseFlexString(s)
	case bsontype.Int64:
		if ms, ok := rv.Int64OK(); ok {
			*ft = NewFlexTime(time.UnixMilli(ms))
		} else {
			*ft = FlexTime{state: timeMalformed}
		}
	case bsontype.Double:
		if f, ok := rv.DoubleOK(); ok {
			*ft = NewFlexTime(time.UnixMilli(int64(f)))
		} else {
			*ft = FlexTime{state: timeMalformed}
		}
	case bsontype.Timestamp:
		if sec, _, ok := rv.TimestampOK(); ok {
			*ft = NewFlexTime(time.Unix(int64(sec), 0))
		} else {
			*ft = FlexTime{state: timeMalformed}
		}
	default:
		*ft = FlexTime{state: timeMalformed}
	}
	return nil
}

func (ft FlexTime) String() string {
	switch ft.state {
	case timeValid:
		return ft.t.Format(time.RFC3339)
	case timeAbsent:
		return "<absent>"
	default:
		return "<malformed>"
	}
}
