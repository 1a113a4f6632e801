package utils

// DownloadEntry is one item of a YAML download manifest.
type DownloadEntry struct {
	URL        string `yaml:"link"`
	OutputPath string `yaml:"op"`
	TLS        bool   `yaml:"tls"`
	Login      string `yaml:"login"`
	Password   string `yaml:"password"`
}
