package logging

// MockLogger is a mock implementation of the Logger interface for testing.
// It captures log entries for verification in tests.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// NewMockLogger creates an empty mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(m.pendingFields, fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError returns a new logger with an error field attached.
// The returned logger shares the entry slice so captured entries stay visible
// on the root mock.
func (m *MockLogger) WithError(err error) Logger {
	return &chainedMock{root: m.root(), err: err, fields: m.pendingFields}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	return &chainedMock{root: m.root(), err: m.pendingError, fields: allFields}
}

func (m *MockLogger) root() *MockLogger { return m }

// HasEntry checks if a log entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// EntriesByLevel returns all log entries of a specific level.
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.Entries {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// chainedMock carries pending error/fields while writing entries back to the
// root MockLogger, so tests always inspect one place.
type chainedMock struct {
	root   *MockLogger
	err    error
	fields []Field
}

func (c *chainedMock) log(level, msg string, fields []Field) {
	allFields := append(append([]Field{}, c.fields...), fields...)
	c.root.Entries = append(c.root.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   c.err,
	})
}

func (c *chainedMock) Debug(msg string, fields ...Field) { c.log("DEBUG", msg, fields) }
func (c *chainedMock) Info(msg string, fields ...Field)  { c.log("INFO", msg, fields) }
func (c *chainedMock) Warn(msg string, fields ...Field)  { c.log("WARN", msg, fields) }
func (c *chainedMock) Error(msg string, fields ...Field) { c.log("ERROR", msg, fields) }

func (c *chainedMock) WithError(err error) Logger {
	return &chainedMock{root: c.root, err: err, fields: c.fields}
}

func (c *chainedMock) WithField(key string, value interface{}) Logger {
	return c.WithFields(Field{Key: key, Value: value})
}

func (c *chainedMock) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, c.fields...), fields...)
	return &chainedMock{root: c.root, err: c.err, fields: allFields}
}
