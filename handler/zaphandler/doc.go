// Package zaphandler bridges records into an existing go.uber.org/zap
// deployment.
//
// Each record is replayed into a message string and written through a
// zapcore.Core as a zap entry. The record's capture time becomes the
// entry time and its call site becomes the entry caller, so zap encoders
// print the location of the original log statement. CriticalLevel maps
// to zap's DPanicLevel; writing through a Core never panics.
package zaphandler
