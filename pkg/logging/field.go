package logging

import "time"

// LogField wraps any value; zap encodes it reflectively.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// DurationField records d in its string form ("7s", "1m30s").
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// ErrorField logs err.Error() under "error"; a nil err logs
// "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}
