package server

// Server is implemented by the bare HTTP listener and by the process-level
// wrapper returned by [NewServer], which adds workers and signal handling.
type Server interface {
	// RunServer blocks while serving and returns once the server stops.
	RunServer()

	// Shutdown stops accepting requests and waits for active ones to end.
	Shutdown()
}
