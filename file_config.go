package rotawatch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/render"
	"github.com/xraph/rotawatch/storage"
)

// envPrefix prefixes every environment override.
const envPrefix = "ROTAWATCH_"

// FileConfig is the YAML configuration read by the rotawatch binaries.
// Durations are Go duration strings ("15m", "20s").
type FileConfig struct {
	CheckInterval   string `yaml:"check_interval"`
	RequestTimeout  string `yaml:"request_timeout"`
	DeliveryTimeout string `yaml:"delivery_timeout"`

	// ListenAddr enables the ops API when non-empty.
	ListenAddr string `yaml:"listen_addr"`

	// CheckRateLimit caps manual POST /check calls per client per minute.
	// Zero disables the limit.
	CheckRateLimit int `yaml:"check_rate_limit"`

	Log     LogConfig     `yaml:"log"`
	API     APIConfig     `yaml:"api"`
	Catalog string        `yaml:"catalog"`
	Pools   []pool.Pool   `yaml:"pools"`
	Image   ImageConfig   `yaml:"image"`
	Message MessageConfig `yaml:"message"`
	Render  render.Config `yaml:"render"`
	Store   StoreConfig   `yaml:"store"`

	// S3 mirrors the summary to a bucket when Bucket is set.
	S3 storage.S3Config `yaml:"s3"`

	Webhooks []WebhookConfig `yaml:"webhooks"`

	// WebhooksFile is a JSON array of webhook URLs, appended to Webhooks.
	WebhooksFile string `yaml:"webhooks_file"`
}

// LogConfig selects the log level and handler format ("json" or "text").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// APIConfig overrides the rotation API endpoints.
type APIConfig struct {
	LatestURL string `yaml:"latest_url"`
	PoolURL   string `yaml:"pool_url"`
}

// ImageConfig controls where the local sink writes the summary.
type ImageConfig struct {
	Dir string `yaml:"dir"`
	Key string `yaml:"key"`
}

// MessageConfig is the text posted alongside the summary.
type MessageConfig struct {
	Content  string `yaml:"content"`
	Username string `yaml:"username"`
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	// Driver is one of file, memory, redis, sqlite, postgres, mongo, dynamodb.
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
	Key    string `yaml:"key"`
	Table  string `yaml:"table"`
	Region string `yaml:"region"`
}

// WebhookConfig is one webhook target.
type WebhookConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Secret string `yaml:"secret"`
}

// DefaultFileConfig returns the configuration used when no file is given.
func DefaultFileConfig() FileConfig {
	cfg := DefaultConfig()
	return FileConfig{
		CheckInterval:   cfg.CheckInterval.String(),
		RequestTimeout:  cfg.RequestTimeout.String(),
		DeliveryTimeout: cfg.DeliveryTimeout.String(),
		CheckRateLimit:  6,
		Log:             LogConfig{Level: "info", Format: "json"},
		API:             APIConfig{LatestURL: cfg.LatestURL, PoolURL: cfg.PoolURL},
		Catalog:         "maps.json",
		Pools:           pool.Default(),
		Image:           ImageConfig{Dir: cfg.ImageDir, Key: cfg.ImageKey},
		Render:          render.DefaultConfig(),
		Store:           StoreConfig{Driver: "file", Path: "currentRotation.json"},
	}
}

// LoadFileConfig reads path over the defaults and applies environment
// overrides. An empty path uses the defaults and the environment only.
func LoadFileConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("rotawatch: read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if cfg.WebhooksFile != "" {
		urls, err := loadWebhookURLs(cfg.WebhooksFile)
		if err != nil {
			return cfg, err
		}
		for _, u := range urls {
			cfg.Webhooks = append(cfg.Webhooks, WebhookConfig{URL: u})
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from ROTAWATCH_* variables.
func (c *FileConfig) applyEnv(lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	str("CHECK_INTERVAL", &c.CheckInterval)
	str("REQUEST_TIMEOUT", &c.RequestTimeout)
	str("DELIVERY_TIMEOUT", &c.DeliveryTimeout)
	str("LISTEN_ADDR", &c.ListenAddr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LATEST_URL", &c.API.LatestURL)
	str("POOL_URL", &c.API.PoolURL)
	str("CATALOG", &c.Catalog)
	str("IMAGE_DIR", &c.Image.Dir)
	str("STORE_DRIVER", &c.Store.Driver)
	str("STORE_PATH", &c.Store.Path)
	str("STORE_URL", &c.Store.URL)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("WEBHOOKS_FILE", &c.WebhooksFile)

	// Comma-separated URLs replace the configured webhooks.
	if v, ok := lookup(envPrefix + "WEBHOOK_URLS"); ok && v != "" {
		var secret string
		str("WEBHOOK_SECRET", &secret)
		c.Webhooks = nil
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				c.Webhooks = append(c.Webhooks, WebhookConfig{URL: u, Secret: secret})
			}
		}
	}
}

// Validate checks durations, pools and webhook URLs.
func (c FileConfig) Validate() error {
	for name, s := range map[string]string{
		"check_interval":   c.CheckInterval,
		"request_timeout":  c.RequestTimeout,
		"delivery_timeout": c.DeliveryTimeout,
	} {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, name)
		}
	}
	if len(c.Pools) == 0 {
		return ErrNoPools
	}
	for i, p := range c.Pools {
		if p.Key == "" {
			return fmt.Errorf("%w: pools[%d] has no key", ErrInvalidConfig, i)
		}
	}
	for i, h := range c.Webhooks {
		if h.URL == "" {
			return fmt.Errorf("%w: webhooks[%d] has no url", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Targets converts the webhook entries to delivery targets.
func (c FileConfig) Targets() []delivery.Target {
	targets := make([]delivery.Target, len(c.Webhooks))
	for i, h := range c.Webhooks {
		targets[i] = delivery.Target{Name: h.Name, URL: h.URL, Secret: h.Secret}
	}
	return targets
}

// Options converts the file config to Watcher options. The catalog, store
// and extra sinks are built by the caller.
func (c FileConfig) Options() []Option {
	// Validate has already checked the durations.
	interval, _ := time.ParseDuration(c.CheckInterval)
	request, _ := time.ParseDuration(c.RequestTimeout)
	deliveryTimeout, _ := time.ParseDuration(c.DeliveryTimeout)

	opts := []Option{
		WithCheckInterval(interval),
		WithRequestTimeout(request),
		WithDeliveryTimeout(deliveryTimeout),
		WithAPI(c.API.LatestURL, c.API.PoolURL),
		WithPools(c.Pools...),
		WithTargets(c.Targets()...),
		WithRenderConfig(c.Render),
		WithMessage(c.Message.Content, c.Message.Username),
	}
	if c.Image.Dir != "" {
		opts = append(opts, WithImageDir(c.Image.Dir))
	}
	if c.Image.Key != "" {
		opts = append(opts, WithImageKey(c.Image.Key))
	}
	return opts
}

func loadWebhookURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rotawatch: read webhooks %s: %w", path, err)
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return urls, nil
}
