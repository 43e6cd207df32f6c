package bootstrap

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	MongoUri         string `mapstructure:"MONGO_URI"`
	MongoDatabase    string `mapstructure:"MONGO_DB"`
	RedisUrl         string `mapstructure:"REDIS_URL"`
	JwtSecret        string `mapstructure:"JWT_SECRET"`
	TokenTTLSeconds  int    `mapstructure:"TOKEN_TTL_SECONDS"`
	AllowedOrigins   string `mapstructure:"ALLOWED_ORIGINS"`
	ProtectHighScore bool   `mapstructure:"PROTECT_HIGHSCORE"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MONGO_DB", "memgame")
	viper.SetDefault("TOKEN_TTL_SECONDS", 3600)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Origins splits ALLOWED_ORIGINS into the list the CORS layer expects.
func (c *Config) Origins() []string {
	if c.AllowedOrigins == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
