package pg

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("pg.errors.failed_to_parse_db_config")
	ErrFailedToOpenDBConnection = errors.New("pg.errors.failed_to_open_db_connection")
	ErrFailedToApplyMigrations  = errors.New("pg.errors.failed_to_apply_migrations")
	ErrMigrationPathNotProvided = errors.New("pg.errors.migration_path_not_provided")
	ErrMigrationsDirNotFound    = errors.New("pg.errors.migrations_dir_not_found")
	ErrHealthcheckFailed        = errors.New("pg.errors.healthcheck_failed")
)
