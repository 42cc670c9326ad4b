package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	Gateway     ServerConfigs
	EventServer ServerConfigs
	Auth        AuthConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string

	// Endpoint is the address other services use to reach this one.
	Endpoint string

	AllowedOrigins []string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf(":%s", s.Port)
}

type AuthConfigs struct {
	AccessTokenName string
	AccessToken     TokenConfigs
}

type TokenConfigs struct {
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr         string
	CommandTopic string
}
