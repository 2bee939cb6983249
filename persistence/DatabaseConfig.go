package persistence

import (
	"database/sql"
	"errors"
	"os"
	"strings"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
}

// ParseDatabaseConfigFromEnv composes the mysql DSN from MYSQL_SERVICE
// (user:pass@(host:port)) and MYSQL_DATABASE.
func ParseDatabaseConfigFromEnv() (*DatabaseConfig, error) {
	mysqlSvc := os.Getenv("MYSQL_SERVICE")
	if mysqlSvc == "" {
		return nil, errors.New("environment variable MYSQL_SERVICE is not set")
	}
	database := os.Getenv("MYSQL_DATABASE")
	if database == "" {
		database = "wrench"
	}
	return &DatabaseConfig{
		DriverType: "mysql",
		DriverArgs: mysqlSvc + "/" + database + "?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
	}, nil
}

// PrepareMysqlDatabase creates the database named in driverArgs if absent.
func PrepareMysqlDatabase(driverArgs string) error {
	idx := strings.LastIndex(driverArgs, "/")
	if idx < 0 {
		return errors.New("invalid mysql driver args: " + driverArgs)
	}
	databaseName := driverArgs[idx+1:]
	if paramsIdx := strings.Index(databaseName, "?"); paramsIdx >= 0 {
		databaseName = databaseName[0:paramsIdx]
	}
	if databaseName == "" {
		return errors.New("database name is not found in driver args: " + driverArgs)
	}

	db, err := sql.Open("mysql", driverArgs[0:idx+1])
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS " + databaseName + " DEFAULT CHARACTER SET utf8mb4")
	return err
}
