package probe

import (
	"net"
	"net/url"
	"strconv"

	"github.com/sjalq/bitly-maker/internal/config"
)

// Endpoint locates the shorten API.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// EndpointFromConfig reads the endpoint settings out of cfg.
func EndpointFromConfig(cfg *config.Config) Endpoint {
	return Endpoint{
		Scheme: cfg.EndpointScheme,
		Host:   cfg.EndpointHost,
		Port:   cfg.EndpointPort,
		Path:   cfg.EndpointPath,
	}
}

// URL renders the endpoint, leaving out the port when it is the scheme's default.
func (e Endpoint) URL() string {
	host := e.Host
	if e.Port > 0 && !(e.Scheme == "https" && e.Port == 443) && !(e.Scheme == "http" && e.Port == 80) {
		host = net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	}
	u := url.URL{Scheme: e.Scheme, Host: host, Path: e.Path}
	return u.String()
}
