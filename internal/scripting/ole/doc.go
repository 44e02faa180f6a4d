//go:build windows

// Package ole provides the Windows scripting backend. It reaches the
// frontend's scripting engine through COM: the SapROTWr helper resolves the
// "SAPGUI" running-object-table entry, and GetScriptingEngine hands back the
// automation root. Everything else is IDispatch property/method calls.
package ole
