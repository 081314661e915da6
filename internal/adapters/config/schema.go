package config

// SettingsFile represents the structure of the zpkg.yaml settings file.
type SettingsFile struct {
	Manifest string   `yaml:"manifest"`
	Networks []string `yaml:"networks"`
	Log      LogDTO   `yaml:"log"`
}

// LogDTO represents the logging section of the settings file.
type LogDTO struct {
	Format string `yaml:"format"`
}
