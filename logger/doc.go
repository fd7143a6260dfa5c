// Package logger is the public API of linelog. Most users only need to
// import this package.
//
// A log statement starts a record, appends typed values to it and sends
// it:
//
//	log.Send(log.Info().Literal("user ").Int(id).Literal(" logged in"))
//
// The record is binary: appends copy fixed-size values and string bytes
// into the record's inline region, literals are stored by address, and
// nothing is formatted until a handler replays the record. With an async
// handler that replay happens on a background goroutine.
//
// A Logger is immutable after construction. The level, the prefix and the
// handler are set once via the Builder and never modified, so Logger is
// safe for concurrent use without any locking on the read path.
//
// Level checks happen before the record pool is touched. A filtered
// statement gets a nil record back, every append method on a nil record
// is a no-op, and Send ignores nil, so filtered-out statements cost a
// comparison and a few nil checks.
//
// The package initializes a default Logger (async, InfoLevel, text
// format to stdout) in init(). The package-level functions Info, Send,
// Errorf, etc. use this default instance, so simple programs can log
// without any setup:
//
//	logger.Send(logger.Info().Literal("ready on port ").Int(8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
package logger
