package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DBHost       string `mapstructure:"DB_HOST"`
	DBPort       string `mapstructure:"DB_PORT"`
	DBUser       string `mapstructure:"DB_USER"`
	DBPassword   string `mapstructure:"DB_PASSWORD"`
	DBName       string `mapstructure:"DB_NAME"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	AccessSecret string `mapstructure:"ACCESS_SECRET"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`
	// AuthDelayMS delays login/signup to mimic the original client's
	// simulated network latency. Zero disables it.
	AuthDelayMS int `mapstructure:"AUTH_DELAY_MS"`
	BcryptCost  int `mapstructure:"BCRYPT_COST"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.BindEnv("PORT")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("ACCESS_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("AUTH_DELAY_MS")
	viper.BindEnv("BCRYPT_COST")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Missing file is fine, env vars carry the config.
	}

	err = viper.Unmarshal(&config)
	return
}
