// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the demo server
type Config struct {
	// Host and Port form the listen address
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// Debug enables debug logging and gin's debug mode
	Debug bool `yaml:"debug"`

	// AllowedOrigins is the CORS allow list. Empty disables CORS headers.
	AllowedOrigins []string `yaml:"allowed_origins"`

	Quote   QuoteConfig   `yaml:"quote"`
	Counter CounterConfig `yaml:"counter"`
	Guard   GuardConfig   `yaml:"guard"`
	Session SessionConfig `yaml:"session"`
	MCP     MCPConfig     `yaml:"mcp"`
	Memory  MemoryConfig  `yaml:"memory"`
	Hello   HelloConfig   `yaml:"hello"`
}

// QuoteConfig configures the /api/post proxy
type QuoteConfig struct {
	URL   string        `yaml:"url"`
	Delay time.Duration `yaml:"delay"`
}

// CounterConfig configures the counter store's init action
type CounterConfig struct {
	InitValue int           `yaml:"init_value"`
	InitDelay time.Duration `yaml:"init_delay"`
}

// GuardConfig names the protected page and the login page
type GuardConfig struct {
	ProtectedPath string `yaml:"protected_path"`
	LoginPath     string `yaml:"login_path"`
}

// SessionConfig configures session cookies and storage
type SessionConfig struct {
	// Secret signs session cookies. If empty, SecretName is looked up in
	// AWS Secrets Manager.
	Secret     string `yaml:"secret"`
	SecretName string `yaml:"secret_name"`

	// DBPath enables SQLite persistence when set
	DBPath string `yaml:"db_path"`

	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	CookieName    string        `yaml:"cookie_name"`
	SecureCookie  bool          `yaml:"secure_cookie"`
}

// MCPConfig configures the MCP endpoint
type MCPConfig struct {
	Enabled        bool          `yaml:"enabled"`
	SessionTimeout time.Duration `yaml:"session_timeout"`
}

// MemoryConfig configures the memory-check command
type MemoryConfig struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	FilePath string   `yaml:"file_path"`
}

// HelloConfig configures /api/hello
type HelloConfig struct {
	Message string `yaml:"message"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Host:           "0.0.0.0",
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:6274", "http://localhost:6277"},
		Quote: QuoteConfig{
			URL:   "https://v1.hitokoto.cn/",
			Delay: 2 * time.Second,
		},
		Counter: CounterConfig{
			InitValue: 100,
			InitDelay: 100 * time.Millisecond,
		},
		Guard: GuardConfig{
			ProtectedPath: "/profile",
			LoginPath:     "/login",
		},
		Session: SessionConfig{
			TTL:           24 * time.Hour,
			SweepInterval: 5 * time.Minute,
			CookieName:    "demo_session",
		},
		MCP: MCPConfig{
			Enabled:        true,
			SessionTimeout: 30 * time.Minute,
		},
		Memory: MemoryConfig{
			Command:  "npx",
			Args:     []string{"-y", "@modelcontextprotocol/server-memory"},
			FilePath: "./ai_memory/agent.json",
		},
		Hello: HelloConfig{
			Message: "你好，来自 API 路由！",
		},
	}
}

// LoadConfigFromEnv loads configuration from environment variables
func LoadConfigFromEnv() (*Config, error) {
	return Load("")
}

// Load builds the configuration from defaults, then the YAML file at path
// (if path is not empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Session secret from AWS Secrets Manager (production)
	if cfg.Session.Secret == "" && cfg.Session.SecretName != "" {
		if err := loadSessionSecretFromSecretsManager(cfg, cfg.Session.SecretName); err != nil {
			return nil, fmt.Errorf("failed to load session secret from Secrets Manager: %w", err)
		}
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if debug := os.Getenv("DEBUG"); debug != "" {
		cfg.Debug = parseBool(debug)
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	if quoteURL := os.Getenv("QUOTE_API_URL"); quoteURL != "" {
		cfg.Quote.URL = quoteURL
	}
	if err := envMillis("QUOTE_DELAY_MS", &cfg.Quote.Delay); err != nil {
		return err
	}

	if v := os.Getenv("COUNTER_INIT_VALUE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid COUNTER_INIT_VALUE: %w", err)
		}
		cfg.Counter.InitValue = n
	}
	if err := envMillis("COUNTER_INIT_DELAY_MS", &cfg.Counter.InitDelay); err != nil {
		return err
	}

	if p := os.Getenv("PROTECTED_PATH"); p != "" {
		cfg.Guard.ProtectedPath = p
	}
	if p := os.Getenv("LOGIN_PATH"); p != "" {
		cfg.Guard.LoginPath = p
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}
	if name := os.Getenv("SESSION_SECRET_NAME"); name != "" {
		cfg.Session.SecretName = name
	}
	if dbPath := os.Getenv("SESSION_DB_PATH"); dbPath != "" {
		cfg.Session.DBPath = dbPath
	}
	if ttl := os.Getenv("SESSION_TTL_SECONDS"); ttl != "" {
		seconds, err := strconv.Atoi(ttl)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL_SECONDS: %w", err)
		}
		cfg.Session.TTL = time.Duration(seconds) * time.Second
	}
	if secure := os.Getenv("SECURE_COOKIE"); secure != "" {
		cfg.Session.SecureCookie = parseBool(secure)
	}

	if enabled := os.Getenv("MCP_ENABLED"); enabled != "" {
		cfg.MCP.Enabled = parseBool(enabled)
	}

	if command := os.Getenv("MEMORY_SERVER_COMMAND"); command != "" {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return fmt.Errorf("invalid MEMORY_SERVER_COMMAND: %q", command)
		}
		cfg.Memory.Command = fields[0]
		cfg.Memory.Args = fields[1:]
	}
	if memoryPath := os.Getenv("MEMORY_FILE_PATH"); memoryPath != "" {
		cfg.Memory.FilePath = memoryPath
	}

	if msg := os.Getenv("HELLO_MESSAGE"); msg != "" {
		cfg.Hello.Message = msg
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	parsedURL, err := url.Parse(c.Quote.URL)
	if err != nil {
		return fmt.Errorf("invalid quote URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("quote URL must use http or https scheme")
	}
	if c.Quote.Delay < 0 {
		return fmt.Errorf("quote delay cannot be negative")
	}
	if c.Counter.InitDelay < 0 {
		return fmt.Errorf("counter init delay cannot be negative")
	}

	if !strings.HasPrefix(c.Guard.ProtectedPath, "/") || !strings.HasPrefix(c.Guard.LoginPath, "/") {
		return fmt.Errorf("guard paths must start with /")
	}
	if c.Guard.ProtectedPath == c.Guard.LoginPath {
		return fmt.Errorf("login path cannot be the protected path")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if c.Memory.Command == "" {
		return fmt.Errorf("memory server command is required")
	}

	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// EnsureSessionSecret fills in a random session secret if none is
// configured. It reports whether it had to generate one; generated secrets
// do not survive a restart, so every cookie becomes invalid.
func (c *Config) EnsureSessionSecret() (bool, error) {
	if c.Session.Secret != "" {
		return false, nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return false, fmt.Errorf("failed to generate session secret: %w", err)
	}
	c.Session.Secret = base64.RawURLEncoding.EncodeToString(b)
	return true, nil
}

func parseBool(s string) bool {
	return s == "true" || s == "1"
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envMillis(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

// loadSessionSecretFromSecretsManager loads the session secret from AWS Secrets Manager
func loadSessionSecretFromSecretsManager(cfg *Config, secretName string) error {
	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)

	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretName,
	})
	if err != nil {
		return fmt.Errorf("failed to retrieve secret: %w", err)
	}
	if result.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", secretName)
	}

	secret, err := parseSessionSecret(*result.SecretString)
	if err != nil {
		return err
	}
	cfg.Session.Secret = secret
	return nil
}

// parseSessionSecret accepts either a JSON document with a SESSION_SECRET
// key or the raw secret string.
func parseSessionSecret(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		if trimmed == "" {
			return "", fmt.Errorf("session secret is empty")
		}
		return trimmed, nil
	}

	var secrets struct {
		SessionSecret string `json:"SESSION_SECRET"`
	}
	if err := json.Unmarshal([]byte(trimmed), &secrets); err != nil {
		return "", fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	if secrets.SessionSecret == "" {
		return "", fmt.Errorf("secret JSON has no SESSION_SECRET")
	}
	return secrets.SessionSecret, nil
}
