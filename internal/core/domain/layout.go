package domain

const (
	// SchemaVersion is the manifest format version written by this tool.
	SchemaVersion = "2.2"

	// DefaultManifestFileName is the conventional name of the package manifest.
	DefaultManifestFileName = "zos.json"

	// ManifestExtension is the extension token anchoring network path derivation.
	ManifestExtension = ".json"

	// SettingsFileName is the name of the optional project settings file.
	SettingsFileName = "zpkg.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
