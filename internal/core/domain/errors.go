package domain

import "go.trai.ch/zerr"

var (
	// ErrSchemaVersionMismatch is returned when a manifest declares a schema version the tool does not support.
	ErrSchemaVersionMismatch = zerr.New("unsupported manifest schema version")

	// ErrPathDerivation is returned when a network-scoped path cannot be derived from a manifest path.
	ErrPathDerivation = zerr.New("cannot derive network file name")

	// ErrMissingContractsContainer is returned when adding a contract to a manifest without a contracts mapping.
	ErrMissingContractsContainer = zerr.New("manifest has no contracts mapping")

	// ErrInvalidContractAlias is returned when a contract alias is empty.
	ErrInvalidContractAlias = zerr.New("contract alias must not be empty")

	// ErrDependencyNotFound is returned when a dependency is not declared in the manifest.
	ErrDependencyNotFound = zerr.New("dependency not declared")

	// ErrDependencyUnsatisfied is returned when a version falls outside a dependency's declared constraint.
	ErrDependencyUnsatisfied = zerr.New("version does not satisfy dependency constraint")

	// ErrInvalidConstraint is returned when a dependency constraint cannot be parsed as a version range.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrInvalidVersion is returned when a version is not a valid semantic version.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrManifestExists is returned when initializing a manifest that already exists.
	ErrManifestExists = zerr.New("manifest already exists")

	// ErrManifestDecode is returned when a manifest document holds a field of the wrong type.
	ErrManifestDecode = zerr.New("failed to decode manifest field")

	// ErrManifestEncode is returned when a manifest field cannot be encoded.
	ErrManifestEncode = zerr.New("failed to encode manifest field")

	// ErrDocumentRead is returned when a document cannot be read from storage.
	ErrDocumentRead = zerr.New("failed to read document")

	// ErrDocumentParse is returned when a stored document is not a JSON object.
	ErrDocumentParse = zerr.New("failed to parse document")

	// ErrDocumentMarshal is returned when a document cannot be serialized.
	ErrDocumentMarshal = zerr.New("failed to marshal document")

	// ErrDocumentWrite is returned when a document cannot be written to storage.
	ErrDocumentWrite = zerr.New("failed to write document")

	// ErrConfigRead is returned when the settings file cannot be read.
	ErrConfigRead = zerr.New("failed to read settings file")

	// ErrConfigParse is returned when the settings file cannot be parsed.
	ErrConfigParse = zerr.New("failed to parse settings file")

	// ErrInvalidLogFormat is returned when the settings name an unknown log format.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'pretty' or 'json'")

	// ErrInvalidNetworkName is returned when a network identifier contains characters outside [A-Za-z0-9_-].
	ErrInvalidNetworkName = zerr.New("invalid network name")

	// ErrWatcherFailed is returned when the manifest watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch manifest")

	// ErrNoNetworks is returned when a network command has no networks to inspect.
	ErrNoNetworks = zerr.New("no networks specified")
)
