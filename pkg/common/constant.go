package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyLogDir        string = "TM_LOG_DIR"
	EnvKeyLogMaxSizeMB  string = "TM_LOG_MAX_SIZE_MB"
	EnvKeyLogMaxBackups string = "TM_LOG_MAX_BACKUPS"

	EnvKeyDBType string = "TM_DB_TYPE"
	EnvKeyDBPath string = "TM_DB_PATH"
	EnvKeyDBDsn  string = "TM_DB_DSN"

	EnvKeyHttpHostPort string = "TM_HTTP_HOST_PORT"
	EnvKeyGrpcHostPort string = "TM_GRPC_HOST_PORT"

	EnvKeyDefaultRate  string = "TM_DEFAULT_RATE"
	EnvKeyDefaultBurst string = "TM_DEFAULT_BURST"

	EnvKeySmtpHost           string = "TM_SMTP_HOST"
	EnvKeySmtpPort           string = "TM_SMTP_PORT"
	EnvKeySmtpUsername       string = "TM_SMTP_USERNAME"
	EnvKeySmtpPassword       string = "TM_SMTP_PASSWORD"
	EnvKeySmtpTimeoutSeconds string = "TM_SMTP_TIMEOUT_SECONDS"
	EnvKeyEmailSender        string = "TM_EMAIL_SENDER"
	EnvKeyNotifyPatient      string = "TM_NOTIFY_PATIENT"

	EnvKeyRedisAddr                 string = "TM_REDIS_ADDR"
	EnvKeyThresholdsCacheTTLSeconds string = "TM_THRESHOLDS_CACHE_TTL_SECONDS"

	LoggerNameMonitorCore   string = "monitor_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameMailer        string = "mailer"
	LoggerNameCache         string = "cache"

	LoggerFieldCategory string = "category"

	LoggerCategoryReading    string = "reading"
	LoggerCategoryThresholds string = "thresholds"
	LoggerCategoryAlert      string = "alert"
	LoggerCategoryNotify     string = "notify"
	LoggerCategoryAudit      string = "audit"
	LoggerCategoryMessage    string = "message"
)
