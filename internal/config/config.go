package config // package config loads application configuration from environment variables

import (
    "fmt"     // fmt formats validation errors
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings joins validation errors

    "github.com/joho/godotenv" // godotenv loads an optional .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign session tokens
    SessionTTLMin  int    // session token time‑to‑live in minutes
    BcryptCost     int    // bcrypt cost for password hashing
    LogLevel       string // logrus level name (debug, info, warn, error)
    LogFormat      string // "text" or "json"
    MigrateOnStart bool   // apply embedded migrations before serving
}

// LoadDotEnv reads a .env file when present.  A missing file is not an
// error: production deployments pass real environment variables.
func LoadDotEnv() {
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("config: .env not loaded: %v", err)
    }
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),                      // environment (dev/test/prod)
        Port:           must("APP_PORT"),                     // port to bind the HTTP server
        DBUser:         must("DB_USER"),                      // database user
        DBPass:         os.Getenv("DB_PASS"),                 // database password (empty allowed)
        DBHost:         must("DB_HOST"),                      // database host
        DBPort:         must("DB_PORT"),                      // database port
        DBName:         must("DB_NAME"),                      // database name
        JWTSecret:      must("JWT_SECRET"),                   // secret used for signing sessions
        SessionTTLMin:  mustInt("SESSION_TTL_MIN"),           // session lifetime in minutes
        BcryptCost:     mustInt("BCRYPT_COST"),               // bcrypt cost factor
        LogLevel:       envStr("LOG_LEVEL", "info"),          // log verbosity
        LogFormat:      envStr("LOG_FORMAT", "text"),         // log output encoding
        MigrateOnStart: envBool("MIGRATE_ON_START", true),    // run migrations at boot
    }
}

// Validate checks values that parse but make no sense at runtime.  All
// problems are reported together.
func (c Config) Validate() error {
    var problems []string
    if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
        problems = append(problems, fmt.Sprintf("invalid APP_PORT %q", c.Port))
    }
    if p, err := strconv.Atoi(c.DBPort); err != nil || p < 1 || p > 65535 {
        problems = append(problems, fmt.Sprintf("invalid DB_PORT %q", c.DBPort))
    }
    if c.BcryptCost < 4 || c.BcryptCost > 31 {
        problems = append(problems, fmt.Sprintf("BCRYPT_COST %d outside [4,31]", c.BcryptCost))
    }
    if c.SessionTTLMin < 1 {
        problems = append(problems, "SESSION_TTL_MIN must be at least 1")
    }
    switch c.LogFormat {
    case "text", "json":
    default:
        problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT %q", c.LogFormat))
    }
    if len(problems) > 0 {
        return fmt.Errorf("config: %s", strings.Join(problems, "; "))
    }
    return nil
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
