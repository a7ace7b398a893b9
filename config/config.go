package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
	Version  string `yaml:"version" json:"version"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
	// Secret signs the JWT tokens issued by the login endpoint.
	Secret string `yaml:"secret" json:"secret"`
	// ImageDir is the on-disk root for uploaded catalog images.
	ImageDir string `yaml:"image_dir" json:"image_dir"`
	// ImagePrefix is the public URL prefix the image references are built with.
	ImagePrefix string `yaml:"image_prefix" json:"image_prefix"`
}

// DBConfig document store configuration
type DBConfig struct {
	URL       string `yaml:"url" json:"url"`
	User      string `yaml:"user" json:"user"`
	Passwd    string `yaml:"passwd" json:"passwd"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "CatalogApi",
		Location: "Europe/Bucharest",
		Workdir:  "/var/catalogapi",
		Debug:    true,
		Version:  "v1",
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        8000,
		Secret:      "9b6de5cc-catalog-1393-secret-e6144c7e",
		ImageDir:    "static",
		ImagePrefix: "/static",
	},
	Database: DBConfig{
		URL:       "ws://127.0.0.1:8000/rpc",
		User:      "root",
		Passwd:    "root",
		Namespace: "catalogapi",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/catalogapi/catalogapi.log",
	},
}

func setEnvValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig loads the yaml configuration file and applies environment
// variable overrides. A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	appcfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				_ = yaml.Unmarshal(data, appcfg)
			}
		}
	}

	setEnvValue("CATALOG_SYSTEM_WORKDIR", &appcfg.System.Workdir)
	setEnvValue("CATALOG_SYSTEM_VERSION", &appcfg.System.Version)
	setEnvBoolValue("CATALOG_SYSTEM_DEBUG", &appcfg.System.Debug)

	setEnvValue("CATALOG_WEB_HOST", &appcfg.Web.Host)
	setEnvIntValue("CATALOG_WEB_PORT", &appcfg.Web.Port)
	setEnvValue("CATALOG_WEB_SECRET", &appcfg.Web.Secret)
	setEnvValue("CATALOG_WEB_IMAGE_DIR", &appcfg.Web.ImageDir)
	setEnvValue("CATALOG_WEB_IMAGE_PREFIX", &appcfg.Web.ImagePrefix)

	setEnvValue("CATALOG_DB_URL", &appcfg.Database.URL)
	setEnvValue("CATALOG_DB_USER", &appcfg.Database.User)
	setEnvValue("CATALOG_DB_PASSWD", &appcfg.Database.Passwd)
	setEnvValue("CATALOG_DB_NAMESPACE", &appcfg.Database.Namespace)

	setEnvValue("CATALOG_LOGGER_MODE", &appcfg.Logger.Mode)
	setEnvBoolValue("CATALOG_LOGGER_FILE_ENABLE", &appcfg.Logger.FileEnable)
	setEnvValue("CATALOG_LOGGER_FILENAME", &appcfg.Logger.Filename)

	return appcfg
}
