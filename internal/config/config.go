package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Crawler     CrawlerConfig     `yaml:"crawler"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Output      OutputConfig      `yaml:"output"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// CrawlerConfig 新闻采集配置
type CrawlerConfig struct {
	Keywords              []string `yaml:"keywords"`
	MaxArticlesPerKeyword int      `yaml:"max_articles_per_keyword"`
}

// AnalysisConfig 聚合分析配置
type AnalysisConfig struct {
	TopNKeywords     int    `yaml:"top_n_keywords"`
	TopEntities      int    `yaml:"top_entities"`
	ClusterCount     int    `yaml:"cluster_count"`
	TFIDFMaxFeatures int    `yaml:"tfidf_max_features"`
	DateSource       string `yaml:"date_source"` // source_info（默认）或 body
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// OutputConfig 结果导出配置
type OutputConfig struct {
	JSONFile   string `yaml:"json_file"`
	CSVFile    string `yaml:"csv_file"`
	ReportFile string `yaml:"report_file"`
}

// ServerConfig 展示服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LoadConfig 从指定路径加载配置并填充默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Analysis.TopNKeywords <= 0 {
		c.Analysis.TopNKeywords = 20
	}
	if c.Analysis.TopEntities <= 0 {
		c.Analysis.TopEntities = 6
	}
	if c.Analysis.ClusterCount <= 0 {
		c.Analysis.ClusterCount = 4
	}
	if c.Analysis.TFIDFMaxFeatures <= 0 {
		c.Analysis.TFIDFMaxFeatures = 100
	}
	if c.Analysis.DateSource == "" {
		c.Analysis.DateSource = "source_info"
	}
	if c.Crawler.MaxArticlesPerKeyword <= 0 {
		c.Crawler.MaxArticlesPerKeyword = 10
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 30
	}
	if c.Output.JSONFile == "" {
		c.Output.JSONFile = "insurtech_results.json"
	}
	if c.Output.CSVFile == "" {
		c.Output.CSVFile = "insurtech_results.csv"
	}
	if c.Output.ReportFile == "" {
		c.Output.ReportFile = "insurtech_report.html"
	}
}
