package http

// Configuration the HTTP server configuration
type Configuration struct {
	Host       string `validate:"required"`
	Port       uint32 `validate:"required"`
	Key        string
	Cert       string
	Cacert     string
	Insecure   bool
	ServerName string `yaml:"server-name"`
}
