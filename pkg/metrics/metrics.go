// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、结算成功总数
//
// **Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、结算耗时（自动计算P50/P90/P99）
//
// # 使用示例
//
//	// 1. 程序启动时初始化一次
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点（gin路由挂promhttp.Handler()）
//
//	// 3. 业务代码中记录
//	start := time.Now()
//	if err := checkout(ctx); err != nil {
//	    metrics.CheckoutsFailedTotal.WithLabelValues("internal").Inc()
//	    return err
//	}
//	metrics.CheckoutsTotal.Inc()
//	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
//
// # 命名与标签规范
//
// 1. Counter以`_total`结尾，Histogram以单位结尾（`_seconds`）
// 2. 标签只用低基数维度（method/path/status），绝不用user_id这类高基数值
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/cart）、status（200/400）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 结算业务指标

	// CheckoutsTotal 结算成功总数（Counter）
	CheckoutsTotal prometheus.Counter

	// CheckoutsFailedTotal 结算失败总数（Counter）
	// 标签：reason（empty_cart/insufficient_stock/internal）
	CheckoutsFailedTotal *prometheus.CounterVec

	// CheckoutDuration 结算耗时（Histogram）
	CheckoutDuration prometheus.Histogram

	// CheckoutAmount 结算金额分布（Histogram，单位：元）
	CheckoutAmount prometheus.Histogram

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，使用promauto注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 结算业务指标
	CheckoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "结算成功总数",
		},
	)

	CheckoutsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_failed_total",
			Help: "结算失败总数",
		},
		[]string{"reason"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_duration_seconds",
			Help: "结算耗时（秒）",
			// 结算涉及行锁+多条写入，允许更长的尾部
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	CheckoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_amount_yuan",
			Help: "结算金额分布（元）",
			// 二手书客单价通常在百元以内
			Buckets: []float64{10, 30, 50, 100, 200, 500, 1000},
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}
