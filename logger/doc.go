// Package logger is the structured front end of hostlog. It turns
// leveled calls with fields into formatted records and hands them to a
// bridge.Sink.
//
// A Logger is immutable after construction. The sink, formatter, level
// and default fields are set once via the Builder, so a Logger is safe
// for concurrent use without locking on the read path.
//
// The package default Logger writes to bridge.Global(), so once a bridge
// has been installed the package-level functions reach the host:
//
//	if err := bridge.InstallSync(fac, "app", bridge.Config{}); err != nil {
//	    return err
//	}
//	logger.Info("ready", logger.Int("port", 8080))
//
// For an explicit sink, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithSink(b).
//	    WithCaller(true).
//	    Build()
//
// Child loggers carrying extra fields are created via With:
//
//	reqLog := log.With(logger.String("request_id", id))
//
// Level checks run before any entry is built. The sink's frozen filter
// is consulted too, so records the host would discard are never
// formatted.
package logger
