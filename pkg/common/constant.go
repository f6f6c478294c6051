package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyHelmetDBType     string = "HELMET_DB_TYPE"
	EnvKeyHelmetDbPath     string = "HELMET_DB_PATH"
	EnvKeyHelmetBadgerPath string = "HELMET_BADGER_PATH"

	EnvKeyFirebaseDatabaseURL     string = "FIREBASE_DATABASE_URL"
	EnvKeyFirebaseCredentialsFile string = "FIREBASE_CREDENTIALS_FILE"

	EnvKeyHelmetHttpHostPort string = "HELMET_HTTP_HOST_PORT"
	EnvKeyHelmetGrpcHostPort string = "HELMET_GRPC_HOST_PORT"
	EnvKeyCorsAllowedOrigins string = "CORS_ALLOWED_ORIGINS"
	EnvKeyHelmetTimezone     string = "HELMET_TIMEZONE"

	EnvKeyHelmetDefaultRate  string = "HELMET_DEFAULT_RATE"
	EnvKeyHelmetDefaultBurst string = "HELMET_DEFAULT_BURST"

	EnvKeyClerkSecretKey string = "CLERK_SECRET_KEY"
	EnvKeyClerkAPIURL    string = "CLERK_API_URL"

	EnvKeyRedisAddr     string = "REDIS_ADDR"
	EnvKeyRedisPassword string = "REDIS_PASSWORD"
	EnvKeyRedisDB       string = "REDIS_DB"
	EnvKeyAlertChannel  string = "HELMET_ALERT_CHANNEL"

	EnvKeyInfluxURL    string = "INFLUXDB_URL"
	EnvKeyInfluxToken  string = "INFLUXDB_TOKEN"
	EnvKeyInfluxOrg    string = "INFLUXDB_ORG"
	EnvKeyInfluxBucket string = "INFLUXDB_BUCKET"

	EnvKeyMQTTBroker   string = "MQTT_BROKER"
	EnvKeyMQTTClientID string = "MQTT_CLIENT_ID"
	EnvKeyMQTTUsername string = "MQTT_USERNAME"
	EnvKeyMQTTPassword string = "MQTT_PASSWORD"
	EnvKeyMQTTTopic    string = "MQTT_TOPIC"

	LoggerNameHelmetCore    string = "helmet_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameMQTT          string = "mqtt_ingest"
	LoggerNameStore         string = "store"
	LoggerNameIdentity      string = "identity"
	LoggerNameNotify        string = "notify"
	LoggerNameTSDB          string = "tsdb"

	LoggerFieldCategory          string = "category"
	LoggerCategoryTelemetry      string = "telemetry"
	LoggerCategoryAlert          string = "alert"
	LoggerCategoryThresholds     string = "thresholds"
	LoggerCategoryEmployee       string = "employee"
	LoggerCategoryAssignment     string = "assignment"
	LoggerCategoryAnalytics      string = "analytics"
	LoggerCategoryIdentityMirror string = "identity_mirror"
)
