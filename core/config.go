package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultEndpointTemplate = "https://firebaseappcheck.googleapis.com/v1/projects/%s/appCheck"
	DefaultClientName       = "fire-admin-go"

	defaultResponseBodyLimit int64 = 1 << 20
)

type Config struct {
	ProjectID            string        `koanf:"project_id" mapstructure:"project_id" validate:"required"`
	EndpointTemplate     string        `koanf:"endpoint_template" mapstructure:"endpoint_template" validate:"required"`
	ClientName           string        `koanf:"client_name" mapstructure:"client_name"`
	RequestTimeout       time.Duration `koanf:"request_timeout" mapstructure:"request_timeout" validate:"gte=0"`
	MaxResponseBodyBytes int64         `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		EndpointTemplate:     DefaultEndpointTemplate,
		ClientName:           DefaultClientName,
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return fmt.Errorf("core: project_id is required")
	}
	template := strings.TrimSpace(c.EndpointTemplate)
	if template == "" {
		return fmt.Errorf("core: endpoint_template is required")
	}
	if strings.Count(template, "%s") != 1 {
		return fmt.Errorf("core: endpoint_template must contain exactly one %%s placeholder")
	}
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("core: invalid config: %w", err)
	}
	return nil
}
