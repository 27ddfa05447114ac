// Package gate implements the host call gate: the single permit a
// goroutine must hold before executing anything inside the embedded host
// runtime.
//
// Only the scoped interface is exported. Enter returns a Guard and the
// caller defers its Release, so the permit is given back on every exit
// path:
//
//	guard := gate.Global().Enter()
//	defer guard.Release()
//	ch.Log(code, msg)
//
// Code that runs as a callback from the host already holds the permit and
// can pass its guard down through a context with NewContext;
// EnterContext recognizes it instead of deadlocking.
package gate
