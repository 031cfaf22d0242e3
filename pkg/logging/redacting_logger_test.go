package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Warn(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Error(msg string, fields ...Field) { m.Called(msg, fields) }
func (m *mockLogger) Debug(msg string, fields ...Field) { m.Called(msg, fields) }

func (m *mockLogger) WithFields(fields ...Field) Logger {
	return m.Called(fields).Get(0).(Logger)
}

func (m *mockLogger) LogAPIRequest(req APIRequestLog) { m.Called(req) }
func (m *mockLogger) LogAPIResponse(resp APIResponseLog) { m.Called(resp) }

func (m *mockLogger) Close() error {
	return m.Called().Error(0)
}

// recorder keeps the last line of each kind.
type recorder struct {
	NullLogger
	mu       sync.Mutex
	msgs     []string
	fields   [][]Field
	request  APIRequestLog
	response APIResponseLog
}

func (r *recorder) Info(msg string, fields ...Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	r.fields = append(r.fields, fields)
}

func (r *recorder) LogAPIRequest(req APIRequestLog) { r.request = req }
func (r *recorder) LogAPIResponse(resp APIResponseLog) { r.response = resp }

const (
	cookie = "_app_session=Zm9vYmFyYmF6cXV4"
	fraud  = "f7c2e9a41b0d"
)

func TestRedactingLogger_MessagesAndFields(t *testing.T) {
	rec := &recorder{}
	l := NewRedactingLogger(rec, cookie, fraud)

	l.Info("sending "+fraud,
		StringField("cookie", cookie),
		IntField("worth", 3),
	)

	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "sending f7c2********", rec.msgs[0])
	assert.Equal(t, "_app*************************", rec.fields[0][0].Value)
	assert.Equal(t, 3, rec.fields[0][1].Value)
}

func TestRedactingLogger_ShortSecretsIgnored(t *testing.T) {
	rec := &recorder{}
	l := NewRedactingLogger(rec, "abcd", "")

	l.Info("abcd stays")
	assert.Equal(t, []string{"abcd stays"}, rec.msgs)
	assert.Empty(t, l.secrets)
}

func TestRedactingLogger_LongestSecretFirst(t *testing.T) {
	rec := &recorder{}
	l := NewRedactingLogger(rec, "token", "token-with-suffix")

	l.Info("token-with-suffix")
	assert.Equal(t, "toke*************", rec.msgs[0])
}

func TestRedactingLogger_APIRequest(t *testing.T) {
	rec := &recorder{}
	l := NewRedactingLogger(rec, fraud)

	l.LogAPIRequest(APIRequestLog{
		URL:  "https://gleam.io/enter/abCD1/42",
		Body: `{"f":"` + fraud + `"}`,
		Headers: map[string]string{
			"X-CSRF-Token": "csrf-abc",
			"Cookie":       cookie,
			"Content-Type": "application/json",
		},
	})

	assert.Equal(t, "https://gleam.io/enter/abCD1/42", rec.request.URL)
	assert.Equal(t, `{"f":"f7c2********"}`, rec.request.Body)
	assert.Equal(t, "****", rec.request.Headers["X-CSRF-Token"])
	assert.Equal(t, "****", rec.request.Headers["Cookie"])
	assert.Equal(t, "application/json", rec.request.Headers["Content-Type"])
}

func TestRedactingLogger_APIResponse(t *testing.T) {
	rec := &recorder{}
	l := NewRedactingLogger(rec, fraud)

	l.LogAPIResponse(APIResponseLog{
		StatusCode:  200,
		BodyPreview: "echo " + fraud,
		Headers:     map[string]string{"Set-Cookie": cookie},
	})

	assert.Equal(t, 200, rec.response.StatusCode)
	assert.Equal(t, "echo f7c2********", rec.response.BodyPreview)
	assert.Equal(t, "****", rec.response.Headers["Set-Cookie"])

	l.LogAPIResponse(APIResponseLog{})
	assert.Nil(t, rec.response.Headers)
}

func TestRedactingLogger_WithFields(t *testing.T) {
	inner := new(mockLogger)
	child := new(mockLogger)
	l := NewRedactingLogger(inner, fraud)

	inner.On("WithFields", []Field{{Key: "token", Value: "f7c2********"}}).Return(child)
	child.On("Warn", "retry f7c2********", mock.Anything).Return()

	l.WithFields(StringField("token", fraud)).Warn("retry " + fraud)

	inner.AssertExpectations(t)
	child.AssertExpectations(t)
}

func TestRedactingLogger_Close(t *testing.T) {
	inner := new(mockLogger)
	inner.On("Close").Return(assert.AnError)

	err := NewRedactingLogger(inner).Close()
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", mask("abc"))
	assert.Equal(t, "****", mask("abcd"))
	assert.Equal(t, "abcd**", mask("abcdef"))
}
