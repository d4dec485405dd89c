package cmd

import (
	"errors"
	"fmt"

	"campusdelivery/internal/pkg/errs"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string
	Storage  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ProofSecret string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RobotReleaseSchedule string

	AdminUserID   string
	AdminUsername string

	LogLevel string
}

// Validate reports every missing or unsupported setting at once.
func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.ProofSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("PROOF_SECRET"))
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		for key, value := range map[string]string{
			"DB_HOST": c.DBHost,
			"DB_PORT": c.DBPort,
			"DB_USER": c.DBUser,
			"DB_NAME": c.DBName,
		} {
			if value == "" {
				problems = append(problems, errs.NewValueIsRequiredError(key))
			}
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORAGE",
			fmt.Errorf("%q is not one of %s, %s", c.Storage, StoragePostgres, StorageMemory)))
	}

	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	if c.AdminUserID != "" && c.AdminUsername == "" {
		problems = append(problems, errs.NewValueIsRequiredError("ADMIN_USERNAME"))
	}

	return errors.Join(problems...)
}

// PostgresDSN builds the keyword/value connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}
