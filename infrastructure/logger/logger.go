package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
	Warning(msg string)
	Close()
}

const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

type LogData struct {
	File      string `json:"file"`
	Function  string `json:"function"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Err       string `json:"err,omitempty"`
	Timestamp string `json:"timestamp"`
}

type jsonLogger struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	encoder *json.Encoder
	closed  bool
}

// NewFileLogger cria um arquivo novo por execução dentro de logDir.
// A interface ocupa o terminal, por isso o log nunca vai para stdout.
func NewFileLogger(logDir, logPrefix string) (Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("falha ao criar o diretório de log '%s': %w", logDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFilePath := filepath.Join(logDir, fmt.Sprintf("%s_%s.json", logPrefix, timestamp))

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir/criar o arquivo de log '%s': %w", logFilePath, err)
	}

	return newJSONLogger(file, file), nil
}

// NewWriterLogger escreve as entradas em qualquer io.Writer.
func NewWriterLogger(w io.Writer) Logger {
	return newJSONLogger(w, nil)
}

func newJSONLogger(w io.Writer, closer io.Closer) *jsonLogger {
	return &jsonLogger{
		out:     w,
		closer:  closer,
		encoder: json.NewEncoder(w),
	}
}

func (l *jsonLogger) write(level string, msg string, errIn error) {
	// skip 3: write <- Info/Error/Warning <- quem chamou
	shortFileName, funcName := caller(3)

	entry := LogData{
		Timestamp: time.Now().Format(time.RFC3339),
		File:      shortFileName,
		Function:  funcName,
		Level:     level,
		Message:   msg,
	}
	if errIn != nil {
		entry.Err = errIn.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		fmt.Fprintf(os.Stderr, "Logger está fechado, não é possível escrever log: %s\n", msg)
		return
	}

	if err := l.encoder.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Falha ao escrever log: %v\n", err)
	}
}

func caller(skip int) (string, string) {
	pc, filePath, _, ok := runtime.Caller(skip)
	if !ok {
		return "???", "???"
	}

	funcName := "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		parts := strings.Split(fn.Name(), ".")
		funcName = parts[len(parts)-1]
	}

	return filepath.Base(filePath), funcName
}

func (l *jsonLogger) Info(msg string) {
	l.write(LevelInfo, msg, nil)
}

func (l *jsonLogger) Error(msg string, err error) {
	l.write(LevelError, msg, err)
}

func (l *jsonLogger) Warning(msg string) {
	l.write(LevelWarning, msg, nil)
}

func (l *jsonLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true

	if l.closer != nil {
		if err := l.closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Erro ao fechar arquivo de log: %v\n", err)
		}
	}
}
