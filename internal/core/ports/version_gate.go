package ports

// VersionGate validates manifest schema versions against what the tool supports.
//
//go:generate mockgen -source=version_gate.go -destination=mocks/mock_version_gate.go -package=mocks
type VersionGate interface {
	// Check fails if declared is missing or outside the supported range.
	// path is only used to give the error context.
	Check(declared, path string) error
}
