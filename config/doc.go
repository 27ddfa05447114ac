// Package config loads bridge settings from a file and the environment and
// installs the process-wide bridge from them.
//
// Keys (environment variables use the HOSTLOG_ prefix, e.g. HOSTLOG_MODE):
//
//	channel:        host channel name              (default "app")
//	mode:           "sync" or "async"              (default "sync")
//	lock_os_thread: pin the async worker's thread  (default false)
//	drain_timeout:  bound for AsyncBridge.Close    (default 5s)
//	format:         "text" or "json"               (default "text")
//	include_caller: add file:line to messages      (default false)
package config
