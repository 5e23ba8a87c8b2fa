package config

// ConfigApp метаданные приложения
type ConfigApp struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // json или console
}

// ConfigServer настройки сервера
type ConfigServer struct {
	PortGRPC                int `mapstructure:"port_grpc"`
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP Gateway
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSwagger настройки Swagger UI
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"` // порт отдельного cmd/swagger-server
}

// ConfigStorage выбор хранилища заметок. Читается один раз при старте.
type ConfigStorage struct {
	Backend    string `mapstructure:"backend"`     // memory, badger, sqlite
	Path       string `mapstructure:"path"`        // каталог badger или файл sqlite
	IDStrategy string `mapstructure:"id_strategy"` // sequence или uuid
}

// Config основная структура конфигурации
type Config struct {
	App     *ConfigApp     `mapstructure:"app"`
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Swagger *ConfigSwagger `mapstructure:"swagger"`
	Storage *ConfigStorage `mapstructure:"storage"`
}

// SetDefaults заполняет отсутствующие секции и нулевые значения значениями по умолчанию
func (c *Config) SetDefaults() {
	if c.App == nil {
		c.App = &ConfigApp{}
	}
	if c.App.Name == "" {
		c.App.Name = "Notes Backend API"
	}
	if c.App.Version == "" {
		c.App.Version = "1.0.0"
	}

	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}

	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	setDefault(&c.Server.PortGRPC, 50051)
	setDefault(&c.Server.PortHTTP, 8080)
	setDefault(&c.Server.HTTPReadTimeout, 10)
	setDefault(&c.Server.HTTPWriteTimeout, 10)
	setDefault(&c.Server.HTTPIdleTimeout, 60)
	setDefault(&c.Server.HTTPReadHeaderTimeout, 5)
	setDefault(&c.Server.GracefulShutdownTimeout, 10)

	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Gateway.CORSAllowedOrigins == "" {
		c.Gateway.CORSAllowedOrigins = "*"
	}
	setDefault(&c.Gateway.CORSMaxAge, 86400)
	setDefault(&c.Gateway.RateLimitRPS, 100)
	setDefault(&c.Gateway.RateLimitBurst, 10)

	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}
	setDefault(&c.Swagger.Port, 8082)

	if c.Storage == nil {
		c.Storage = &ConfigStorage{}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.IDStrategy == "" {
		c.Storage.IDStrategy = "sequence"
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
