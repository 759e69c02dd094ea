package eq

// DebugChecks reports whether the package was built with -tags eqdebug.
const DebugChecks = debugChecks
