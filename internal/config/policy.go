package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var hostnamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]*[a-z0-9])?$`)

// TrustPolicy holds the allow-lists and limits used by the content trust gateway.
type TrustPolicy struct {
	// ImageHosts are matched by substring against the image URL hostname.
	ImageHosts []string `yaml:"image_hosts"`
	// FileHost must equal the file URL hostname exactly.
	FileHost  string          `yaml:"file_host"`
	ProjectID string          `yaml:"project_id"`
	Dataset   string          `yaml:"dataset"`
	RateLimit RateLimitPolicy `yaml:"rate_limit"`
}

// RateLimitPolicy configures the sliding-window limiter.
type RateLimitPolicy struct {
	MaxAttempts int   `yaml:"max_attempts"`
	WindowMs    int64 `yaml:"window_ms"`
}

// Window returns the window as a duration.
func (r RateLimitPolicy) Window() time.Duration {
	return time.Duration(r.WindowMs) * time.Millisecond
}

// Validate implements validation.Validatable.
func (r RateLimitPolicy) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&r.WindowMs, validation.Required, validation.Min(int64(1))),
	)
}

// DefaultTrustPolicy returns the production policy.
func DefaultTrustPolicy() TrustPolicy {
	hosts := make([]string, len(DefaultImageHosts))
	copy(hosts, DefaultImageHosts)
	return TrustPolicy{
		ImageHosts: hosts,
		FileHost:   DefaultFileHost,
		ProjectID:  "coopfuturo",
		Dataset:    "production",
		RateLimit: RateLimitPolicy{
			MaxAttempts: DefaultRateLimitMaxAttempts,
			WindowMs:    DefaultRateLimitWindowMs,
		},
	}
}

// Validate implements validation.Validatable.
func (p TrustPolicy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ImageHosts,
			validation.Required,
			validation.Each(validation.Required, validation.Match(hostnamePattern).Error("must be a lower-case hostname")),
		),
		validation.Field(&p.FileHost,
			validation.Required,
			validation.Match(hostnamePattern).Error("must be a lower-case hostname"),
		),
		validation.Field(&p.ProjectID, validation.Required),
		validation.Field(&p.Dataset, validation.Required),
		validation.Field(&p.RateLimit),
	)
}

// LoadTrustPolicy reads a YAML policy file. Fields missing from the file keep
// their default values.
func LoadTrustPolicy(path string) (TrustPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TrustPolicy{}, fmt.Errorf("read trust policy: %w", err)
	}
	return ParseTrustPolicy(data)
}

// ParseTrustPolicy decodes and validates a YAML policy document.
func ParseTrustPolicy(data []byte) (TrustPolicy, error) {
	p := DefaultTrustPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return TrustPolicy{}, fmt.Errorf("parse trust policy: %w", err)
	}
	for i, h := range p.ImageHosts {
		p.ImageHosts[i] = strings.ToLower(strings.TrimSpace(h))
	}
	p.FileHost = strings.ToLower(strings.TrimSpace(p.FileHost))

	if err := p.Validate(); err != nil {
		return TrustPolicy{}, fmt.Errorf("invalid trust policy: %w", err)
	}
	return p, nil
}

// ResolvePolicy returns the policy file contents when one is configured,
// otherwise the environment-derived policy after validation.
func (c *Config) ResolvePolicy() (TrustPolicy, error) {
	if c.TrustPolicyFile != "" {
		return LoadTrustPolicy(c.TrustPolicyFile)
	}
	if err := c.Policy.Validate(); err != nil {
		return TrustPolicy{}, fmt.Errorf("invalid trust policy: %w", err)
	}
	return c.Policy, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
