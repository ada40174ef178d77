package domain

const (
	DefaultBaseURL                = "https://api.apis.guru/v2"
	DefaultRequestTimeoutSeconds  = 10
	DefaultSummaryConcurrency     = 4
	DefaultMetricsListenAddress   = "127.0.0.1:9090"
	DefaultLogLevel               = "info"
	DefaultOutputFormat           = "text"
	DefaultConfigReloadDebounceMs = 200
	DirectoryDocumentName         = "providers.json"
	DescriptorDocumentExtension   = ".json"
	DeepLinkScheme                = "apidir"
	UserAgentProduct              = "apidir"
)
