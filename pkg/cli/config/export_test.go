package config

// NewLogger exposes the unexported Logger fields for tests
func NewLogger(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
