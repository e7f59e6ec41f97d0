package config

type AppConfig struct {
	APIPort     string `env:"PORT,required" envDefault:"5000"`
	AppSource   string `env:"APP_SOURCE" envDefault:"bookgraph"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
}

type GraphQLConfig struct {
	PlaygroundEnabled    bool `env:"GRAPHQL_PLAYGROUND_ENABLED" envDefault:"true"`
	IntrospectionEnabled bool `env:"GRAPHQL_INTROSPECTION_ENABLED" envDefault:"true"`
	ComplexityLimit      int  `env:"GRAPHQL_COMPLEXITY_LIMIT" envDefault:"200"`
	QueryCacheSize       int  `env:"GRAPHQL_QUERY_CACHE_SIZE" envDefault:"1000"`
	APQCacheSize         int  `env:"GRAPHQL_APQ_CACHE_SIZE" envDefault:"100"`
}

type MetricsConfig struct {
	ServiceName string `env:"METRICS_SERVICE_NAME" envDefault:"bookgraph"`
}
