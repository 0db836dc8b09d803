package config

import "fmt"

// Warnings lists settings that are accepted but probably wrong: example
// secrets, an outdated .env layout, or the file store in production.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.EnvSchemaVersion != "" && c.EnvSchemaVersion != ExpectedEnvSchemaVersion {
		warnings = append(warnings, fmt.Sprintf(
			"ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated",
			ExpectedEnvSchemaVersion, c.EnvSchemaVersion))
	}

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if c.DBDriver == DriverPostgres && c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.IsProduction() && c.DBDriver == DriverSQLite {
		warnings = append(warnings, "DB_DRIVER is sqlite in production - a single file store serializes all writes")
	}

	return warnings
}

// IsProduction reports whether ENVIRONMENT names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}
