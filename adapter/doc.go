// Package adapter lets code written against other logging APIs feed a
// bridge.Sink. Each adapter renders its native entry through a
// formatter.Formatter and emits one core.Record per call:
//
//	slog.New(adapter.NewSlogHandler(sink, nil))
//	zap.New(adapter.NewZapCore(sink, nil))
//	logrusLogger.AddHook(adapter.NewLogrusHook(sink, nil))
//
// Level checks always consult the sink first, so records the host would
// discard are never formatted. Levels the host taxonomy has no tier for
// (zap's DPanic, Panic and Fatal, logrus' Panic and Fatal) are delivered
// as errors; the originating library still panics or exits afterwards.
//
// Code running inside a host callback already holds the gate and must hand
// its guard context down, or a synchronous sink would block on the gate:
// slog and logrus pass their call context through (InfoContext,
// WithContext), zap takes it as a ZapContext field.
package adapter
