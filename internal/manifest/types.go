package manifest

// FileName is the manifest file every package directory is expected to hold.
const FileName = "package.json"

// UnknownVersion is reported whenever a version cannot be determined.
const UnknownVersion = "unknown"

// PackageManifest holds the package.json fields this tool reads.
type PackageManifest struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private,omitempty"`
}
