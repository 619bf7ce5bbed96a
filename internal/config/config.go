package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "KB_CONFIG"
	storePathEnv  = "KB_STORE_PATH"
	htmlPathEnv   = "KB_HTML_PATH"
	arxivAPIEnv   = "KB_ARXIV_API_URL"
	serverAddrEnv = "KB_SERVER_ADDR"
	logLevelEnv   = "KB_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Arxiv     ArxivConfig     `yaml:"arxiv"`
	Anthology AnthologyConfig `yaml:"anthology"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StoreConfig names the persisted JSON document and the rendered viewer.
type StoreConfig struct {
	Path     string `yaml:"path"`
	HTMLPath string `yaml:"htmlPath"`
}

// ArxivConfig describes the metadata API and its batching behavior.
type ArxivConfig struct {
	APIURL            string `yaml:"apiUrl"`
	BatchSize         int    `yaml:"batchSize"`
	BatchDelaySeconds int    `yaml:"batchDelaySeconds"`
	TimeoutSeconds    int    `yaml:"timeoutSeconds"`
}

// BatchDelay resolves the inter-batch pause.
func (a ArxivConfig) BatchDelay() time.Duration {
	return time.Duration(a.BatchDelaySeconds) * time.Second
}

// Timeout resolves the per-request limit.
func (a ArxivConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AnthologyConfig tunes the page scraper.
type AnthologyConfig struct {
	PageDelaySeconds   int  `yaml:"pageDelaySeconds"`
	TimeoutSeconds     int  `yaml:"timeoutSeconds"`
	InsecureSkipVerify bool `yaml:"insecureSkipVerify"`
}

// PageDelay resolves the pause between page fetches.
func (a AnthologyConfig) PageDelay() time.Duration {
	return time.Duration(a.PageDelaySeconds) * time.Second
}

// Timeout resolves the per-request limit.
func (a AnthologyConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ServerConfig describes the optional live-edit helper.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An explicit path wins over the KB_CONFIG env var.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storePathEnv); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(htmlPathEnv); v != "" {
		c.Store.HTMLPath = v
	}
	if v := os.Getenv(arxivAPIEnv); v != "" {
		c.Arxiv.APIURL = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}
	if override.Store.HTMLPath != "" {
		base.Store.HTMLPath = override.Store.HTMLPath
	}

	if override.Arxiv.APIURL != "" {
		base.Arxiv.APIURL = override.Arxiv.APIURL
	}
	if override.Arxiv.BatchSize > 0 {
		base.Arxiv.BatchSize = override.Arxiv.BatchSize
	}
	if override.Arxiv.BatchDelaySeconds > 0 {
		base.Arxiv.BatchDelaySeconds = override.Arxiv.BatchDelaySeconds
	}
	if override.Arxiv.TimeoutSeconds > 0 {
		base.Arxiv.TimeoutSeconds = override.Arxiv.TimeoutSeconds
	}

	if override.Anthology.PageDelaySeconds > 0 {
		base.Anthology.PageDelaySeconds = override.Anthology.PageDelaySeconds
	}
	if override.Anthology.TimeoutSeconds > 0 {
		base.Anthology.TimeoutSeconds = override.Anthology.TimeoutSeconds
	}
	if override.Anthology.InsecureSkipVerify {
		base.Anthology.InsecureSkipVerify = true
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Path:     "knowledge_base.json",
			HTMLPath: "knowledge_base.html",
		},
		Arxiv: ArxivConfig{
			APIURL:            "https://export.arxiv.org/api/query",
			BatchSize:         50,
			BatchDelaySeconds: 3,
			TimeoutSeconds:    30,
		},
		Anthology: AnthologyConfig{
			PageDelaySeconds:   1,
			TimeoutSeconds:     15,
			InsecureSkipVerify: true,
		},
		Server:  ServerConfig{Addr: ":8765"},
		Logging: LoggingConfig{Level: "info"},
	}
}
