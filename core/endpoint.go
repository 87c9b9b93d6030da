package core

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-appcheck/version"
)

const (
	HeaderClient   = "X-Firebase-Client"
	HeaderAppCheck = "X-Firebase-AppCheck"
)

// ServiceEndpoint is the resolved verification URL for one project.
type ServiceEndpoint struct {
	template  string
	projectID string
	url       string
}

func NewServiceEndpoint(template string, projectID string) (ServiceEndpoint, error) {
	template = strings.TrimSpace(template)
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ServiceEndpoint{}, configurationError("core: project id is required", nil)
	}
	if strings.Count(template, "%s") != 1 {
		return ServiceEndpoint{}, configurationError(
			"core: endpoint template must contain exactly one %s placeholder",
			map[string]any{"endpoint_template": template},
		)
	}
	resolved := fmt.Sprintf(template, url.PathEscape(projectID))
	if _, err := url.ParseRequestURI(resolved); err != nil {
		return ServiceEndpoint{}, wrapConfigurationError(err, "core: endpoint template does not resolve to a valid url")
	}
	return ServiceEndpoint{template: template, projectID: projectID, url: resolved}, nil
}

func (e ServiceEndpoint) ProjectID() string { return e.projectID }

func (e ServiceEndpoint) Template() string { return e.template }

func (e ServiceEndpoint) URL() string { return e.url }

func (e ServiceEndpoint) String() string { return e.url }

var (
	commonHeadersOnce sync.Once
	commonHeaders     map[string]string
)

// CommonHeaders returns a copy of the headers sent with every request. The
// underlying map is computed once from the build version.
func CommonHeaders() map[string]string {
	commonHeadersOnce.Do(func() {
		commonHeaders = map[string]string{
			HeaderClient: version.ClientHeader(DefaultClientName),
		}
	})
	return cloneMap(commonHeaders)
}
