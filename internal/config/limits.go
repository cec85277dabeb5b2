package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxRelativePathLength is the maximum length for the relative path of
	// an uploaded file. Set to 1000 to allow deeply dropped directory
	// structures; longer paths indicate overly deep hierarchies
	// (anti-pattern).
	MaxRelativePathLength = 1000
)
