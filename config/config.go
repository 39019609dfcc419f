package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Mail      MailConfigs
	Storage   S3Configs
	File      FileConfigs
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string

	DefaultLimit int
	MaxLimit     int
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr        string
	WinnerTopic string
}

type MailConfigs struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromName    string
	FromAddress string
}

// IsConfigured reports whether the mail transport can be constructed at all.
// A missing host or sender address means the feature is disabled, which is a
// different condition than a delivery-time failure.
func (m MailConfigs) IsConfigured() bool {
	return m.Host != "" && m.FromAddress != ""
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize int64
}

// Duration wraps time.Duration so it can be decoded from TOML strings like
// "15m" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
