package logging

// NullLogger discards everything. Engines and clients fall back
// to it when no logger is configured.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field) {}
func (NullLogger) Warn(string, ...Field) {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }
func (NullLogger) LogAPIRequest(APIRequestLog) {}
func (NullLogger) LogAPIResponse(APIResponseLog) {}
func (NullLogger) Close() error { return nil }
