package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal, "HTTPRequestsTotal未初始化")
	assert.NotNil(t, HTTPRequestDuration, "HTTPRequestDuration未初始化")
	assert.NotNil(t, HTTPRequestsInProgress, "HTTPRequestsInProgress未初始化")
	assert.NotNil(t, CheckoutsTotal, "CheckoutsTotal未初始化")
	assert.NotNil(t, CheckoutsFailedTotal, "CheckoutsFailedTotal未初始化")
	assert.NotNil(t, CheckoutDuration, "CheckoutDuration未初始化")
	assert.NotNil(t, CheckoutAmount, "CheckoutAmount未初始化")
	assert.NotNil(t, MessagesPublishedTotal, "MessagesPublishedTotal未初始化")

	// 重复初始化不应panic（promauto重复注册会panic，靠initialized守护）
	InitMetrics()
}

// TestCheckoutCounters 测试结算计数器
func TestCheckoutCounters(t *testing.T) {
	InitMetrics()

	before := counterValue(t, CheckoutsTotal)
	CheckoutsTotal.Inc()
	CheckoutsTotal.Inc()
	assert.Equal(t, before+2, counterValue(t, CheckoutsTotal))

	failedBefore := counterVecValue(t, CheckoutsFailedTotal, "insufficient_stock")
	CheckoutsFailedTotal.WithLabelValues("insufficient_stock").Inc()
	assert.Equal(t, failedBefore+1, counterVecValue(t, CheckoutsFailedTotal, "insufficient_stock"))
}

// TestHTTPRequestsInProgress 测试在途请求Gauge
func TestHTTPRequestsInProgress(t *testing.T) {
	InitMetrics()

	HTTPRequestsInProgress.Set(0)
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Dec()

	assert.Equal(t, float64(1), gaugeValue(t, HTTPRequestsInProgress))
}

// TestCheckoutDuration 测试结算耗时直方图
func TestCheckoutDuration(t *testing.T) {
	InitMetrics()

	countBefore := histogramCount(t, CheckoutDuration)
	CheckoutDuration.Observe(0.05)
	CheckoutDuration.Observe(0.5)

	assert.Equal(t, countBefore+2, histogramCount(t, CheckoutDuration))
}

// 辅助函数：读取Counter当前值
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m), "读取Counter值失败")
	return m.Counter.GetValue()
}

// 辅助函数：读取带单标签的CounterVec当前值
func counterVecValue(t *testing.T, c *prometheus.CounterVec, label string) float64 {
	var m dto.Metric
	require.NoError(t, c.WithLabelValues(label).Write(&m), "读取CounterVec值失败")
	return m.Counter.GetValue()
}

// 辅助函数：读取Gauge当前值
func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	var m dto.Metric
	require.NoError(t, g.Write(&m), "读取Gauge值失败")
	return m.Gauge.GetValue()
}

// 辅助函数：读取Histogram观测次数
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	var m dto.Metric
	require.NoError(t, h.Write(&m), "读取Histogram值失败")
	return m.Histogram.GetSampleCount()
}
