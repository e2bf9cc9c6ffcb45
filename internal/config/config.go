package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string // "" disables the health endpoint

	Env string // "dev" | "prod"

	ShutdownTimeoutSeconds int

	// Storage
	DataDir         string // e.g. "./data"
	CredentialsPath string // e.g. "./data/config.json"
	RequestsDir     string // e.g. "./data/requests"
	DocsDir         string // e.g. "./docs"
	RequestBackend  string // "json" | "sqlite"
	DBPath          string // used when RequestBackend is "sqlite"

	// Host pick-lists offered to the request form.
	Departments []string
	Employees   []string
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	defaultDepartments = []string{"Отдел кадров", "Бухгалтерия", "ИТ-отдел", "Администрация"}
	defaultEmployees   = []string{"Иванов И.И.", "Петров П.П.", "Сидоров С.С."}
)

// LoadDotEnv populates the process environment from a .env file. A missing
// file is not an error; variables already set are left alone.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func FromEnv() Config {
	addr := getenvDefault("STRAZHNIK_HTTP_ADDR", ":8080")
	grpcAddr := getenvDefault("STRAZHNIK_GRPC_ADDR", ":9090")
	if strings.EqualFold(strings.TrimSpace(os.Getenv("STRAZHNIK_GRPC_ADDR")), "off") {
		grpcAddr = ""
	}

	env := strings.ToLower(getenvDefault("STRAZHNIK_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dataDir := getenvDefault("STRAZHNIK_DATA_DIR", "./data")

	backend := strings.ToLower(getenvDefault("STRAZHNIK_REQUEST_BACKEND", BackendJSON))
	if backend != BackendJSON && backend != BackendSQLite {
		backend = BackendJSON
	}

	departments := splitCSV(os.Getenv("STRAZHNIK_DEPARTMENTS"))
	if len(departments) == 0 {
		departments = append([]string(nil), defaultDepartments...)
	}
	employees := splitCSV(os.Getenv("STRAZHNIK_EMPLOYEES"))
	if len(employees) == 0 {
		employees = append([]string(nil), defaultEmployees...)
	}

	return Config{
		HTTPAddr: addr,
		GRPCAddr: grpcAddr,
		Env:      env,

		ShutdownTimeoutSeconds: getenvInt("STRAZHNIK_SHUTDOWN_TIMEOUT_SECONDS", 5),

		DataDir:         dataDir,
		CredentialsPath: getenvDefault("STRAZHNIK_CREDENTIALS_PATH", filepath.Join(dataDir, "config.json")),
		RequestsDir:     getenvDefault("STRAZHNIK_REQUESTS_DIR", filepath.Join(dataDir, "requests")),
		DocsDir:         getenvDefault("STRAZHNIK_DOCS_DIR", "./docs"),
		RequestBackend:  backend,
		DBPath:          getenvDefault("STRAZHNIK_DB_PATH", filepath.Join(dataDir, "strazhnik.db")),

		Departments: departments,
		Employees:   employees,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
