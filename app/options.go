package app

// Options configures an App.
type Options struct {
	Seed      int64  // Generator seed; 0 = time-based
	OutputDir string // Telemetry directory; empty = disabled
	Headless  bool   // No window, no GPU
	Export    string // Write the last galaxy here on exit (.csv or binary)
}
