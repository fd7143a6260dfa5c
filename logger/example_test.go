package logger_test

import (
	"io"
	"os"

	"github.com/philipp01105/linelog/formatter"
	"github.com/philipp01105/linelog/handler/consolehandler"
	"github.com/philipp01105/linelog/logger"
)

// Use the package-level default logger for quick, no-setup logging.
func Example() {
	logger.Send(logger.Info().Literal("Application started"))
	logger.Send(logger.Info().Literal("User login username=").String("alice").Literal(" user_id=").Int(123))
}

// Create a custom Logger with the Builder pattern.
func ExampleNewBuilder() {
	ch := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{
			TimestampFormat: "-",
		}),
	})

	log := logger.NewBuilder().
		WithHandler(ch).
		WithLevel(logger.DebugLevel).
		Build()

	log.Send(log.Info().Literal("ready on port ").Uint32(8080))
	log.Send(log.Debug().Literal("cache ratio ").Float64(0.75))
	log.Close()
	// Output:
	// - [INFO] ready on port 8080
	// - [DEBUG] cache ratio 0.75
}

// Use With to create a child logger with a fixed prefix.
func ExampleLogger_With() {
	ch := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: io.Discard,
	})

	log := logger.NewBuilder().
		WithHandler(ch).
		Build()

	reqLog := log.With("request_id=req-12345 ")
	reqLog.Send(reqLog.Info().Literal("processing path=").String("/api/users"))
	reqLog.Send(reqLog.Info().Literal("completed status=").Int(200))
	log.Close()
}
