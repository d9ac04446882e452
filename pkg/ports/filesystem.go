package ports

// FileSystem is the storage used for reports, evidence images, charts and
// configuration files. Paths are host paths; implementations create parent
// directories on write.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte) error

	// MkdirAll creates path and any missing parents. Existing directories
	// are not an error.
	MkdirAll(path string) error

	// Exists reports whether path names an existing file or directory.
	// Only unexpected stat failures are returned as errors.
	Exists(path string) (bool, error)
}
