// Package bridge redirects log records into the logging facility of an
// embedded, single-threaded host runtime.
//
// Two sinks are provided:
//
//   - SyncBridge delivers on the calling goroutine. It acquires the host
//     call gate for every record, so the caller pays the full latency of
//     the host call.
//   - AsyncBridge appends records to an unbounded FIFO queue and returns.
//     A single worker goroutine drains the queue through the gate, so all
//     asynchronous deliveries are serialized and keep per-producer order.
//
// Both resolve the host's level codes and freeze the channel's effective
// level into a Filter when they are constructed. Later changes to the
// host-side level are not picked up. Records below the filter are rejected
// before any work is done; for AsyncBridge they never enter the queue.
//
// Delivery is best effort. An error or panic raised by the host call is
// counted in Stats and otherwise discarded; it is never retried and never
// reaches the producer. Only construction (*SetupError) and a second
// Install (ErrAlreadyInstalled) report failures.
//
// AsyncBridge.Shutdown enqueues a stop token and returns at once: records
// queued before it are delivered if the worker gets to run, records logged
// after it are dropped. Close and CloseContext additionally wait, with a
// bound, for the worker to finish.
//
// Passing a sink explicitly to whatever emits records is preferred. For
// code that cannot, Install publishes one sink for the whole process and
// Global returns a forwarder to it.
package bridge
