package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения запросов к БД
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business Метрики (специфичные для BistroBot)
// =============================================================================

// --- Reviews Service ---

// ReviewsIngested - отзывы, полученные с платформ
var ReviewsIngested = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reviews_ingested_total",
		Help: "Total number of reviews ingested from platforms",
	},
	[]string{"platform", "sentiment"},
)

// RepliesDrafted - сгенерированные и сохранённые черновики ответов
var RepliesDrafted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "replies_drafted_total",
		Help: "Total number of reply drafts created",
	},
	[]string{"source"}, // ai, user
)

// RepliesPublished - опубликованные ответы
var RepliesPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "replies_published_total",
		Help: "Total number of replies published to platforms",
	},
	[]string{"trigger"}, // manual, scheduled
)

// RepliesScheduled - ответы, поставленные в расписание
var RepliesScheduled = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "replies_scheduled_total",
		Help: "Total number of replies scheduled for later publication",
	},
)

// --- Settings Service ---

// TemplatesByAction - операции с шаблонами ответов
var TemplatesByAction = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reply_templates_operations_total",
		Help: "Total number of reply template operations",
	},
	[]string{"action"}, // create, update, delete
)

// --- Accounts Service ---

// SubscriptionChanges - смены тарифного плана
var SubscriptionChanges = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "subscription_changes_total",
		Help: "Total number of subscription tier changes",
	},
	[]string{"tier"}, // итоговый тариф после смены
)

// --- Worker Service ---

// WorkerDispatchProcessed - обработанные задания на отложенную публикацию
var WorkerDispatchProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_dispatch_processed_total",
		Help: "Total number of scheduled reply dispatch jobs processed",
	},
	[]string{"status"}, // sent, failed, cancelled
)

// WorkerAlertsSent - отправленные e-mail уведомления о негативных отзывах
var WorkerAlertsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_alerts_sent_total",
		Help: "Total number of negative review alert emails sent",
	},
	[]string{"status"}, // success, failed
)

// WorkerDispatchDuration - время доставки отложенного ответа
var WorkerDispatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "worker_dispatch_duration_seconds",
		Help:    "Duration of scheduled reply dispatch in worker",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	},
)
