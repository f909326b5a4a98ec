package config

// Config 配置主体
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	DB          DBConfig        `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Logstash    LogstashConfig  `mapstructure:"logstash"`
	LLM         LLMConfig       `mapstructure:"llm"`
	MinIO       MinIOConfig     `mapstructure:"minio"`
	Kafka       KafkaConfig     `mapstructure:"kafka"`
	Drafts      DraftsConfig    `mapstructure:"drafts"`
	Lifecycle   LifecycleConfig `mapstructure:"lifecycle"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// LLMConfig 草稿生成使用的两个模型来源
type LLMConfig struct {
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	PromptPath string         `mapstructure:"prompt_path"`
}

type ProviderConfig struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

type KafkaConfig struct {
	Brokers     []string   `mapstructure:"brokers"`
	Sasl        SaslConfig `mapstructure:"sasl"`
	StatusTopic string     `mapstructure:"status_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// DraftsConfig 每日草稿生成
type DraftsConfig struct {
	GenerationTime string `mapstructure:"generation_time"` // HH:MM
	TweetsPerDay   int    `mapstructure:"tweets_per_day"`
}

type LifecycleConfig struct {
	AllowPostedEdits bool `mapstructure:"allow_posted_edits"`
	MaxSaveRetries   int  `mapstructure:"max_save_retries"`
}
