package config

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "2.0"

// Values shipped in .env.example that must not reach production
const (
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleDBPassword = "change_this_secure_password"
)

// Error messages
const (
	ErrMsgFailedToProcessEnv = "failed to read environment"
	ErrMsgAPIKeyRequired     = "API_KEY environment variable must be set for security"
	ErrMsgUnknownDriver      = "DB_DRIVER must be sqlite or postgres"
	ErrMsgSQLitePathRequired = "DB_PATH must be set when DB_DRIVER is sqlite"
	ErrMsgPostgresIncomplete = "DB_HOST and DB_NAME must be set when DB_DRIVER is postgres"
	ErrMsgInvalidPort        = "PORT must be between 1 and 65535"
	ErrMsgNegativeSetting    = "must not be negative"
)
