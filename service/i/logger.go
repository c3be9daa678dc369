package i

// Logger is the component logger every service writes through.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
