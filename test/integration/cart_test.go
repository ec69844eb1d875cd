package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：购物车与结算模块集成测试
//
// 测试场景覆盖：
// 1. 加购、合并、更新、移除、清空
// 2. 购物车视图按实时价格计算
// 3. 结算（事务处理、库存扣减、购买记录快照）
// 4. 并发结算防超卖（本模块最核心的测试）
// 5. 购买历史查询

// TestCartFlow 测试购物车基本操作
func TestCartFlow(t *testing.T) {
	_, sellerToken := RegisterTestUser(t, "cart_seller")
	_, buyerToken := RegisterTestUser(t, "cart_buyer")

	bookID := PublishTestBook(t, sellerToken, "《购物车测试图书》", 2900, 10)

	t.Run("首次加购新建条目", func(t *testing.T) {
		req := map[string]interface{}{
			"book_id":  bookID,
			"quantity": 2,
		}

		resp := PostJSON(t, BaseURL+"/cart/items", req, buyerToken)
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		var item CartItemData
		err := json.Unmarshal(resp.Data, &item)
		require.NoError(t, err, "解析加购响应失败")

		assert.Equal(t, 2, item.Quantity)

		t.Logf("✓ 加购成功，条目ID: %d, 数量: %d", item.ItemID, item.Quantity)
	})

	t.Run("重复加购合并数量", func(t *testing.T) {
		req := map[string]interface{}{
			"book_id":  bookID,
			"quantity": 3,
		}

		resp := PostJSON(t, BaseURL+"/cart/items", req, buyerToken)
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		var item CartItemData
		err := json.Unmarshal(resp.Data, &item)
		require.NoError(t, err, "解析加购响应失败")

		assert.Equal(t, 5, item.Quantity, "重复加购应该合并为2+3=5")

		cart := GetCart(t, buyerToken)
		assert.Len(t, cart.Lines, 1, "同一本书只应该有一行")

		t.Logf("✓ 合并加购成功，合并后数量: %d", item.Quantity)
	})

	t.Run("购物车视图按实时价格计算", func(t *testing.T) {
		cart := GetCart(t, buyerToken)
		require.Len(t, cart.Lines, 1)

		line := cart.Lines[0]
		assert.Equal(t, int64(2900), line.Price)
		assert.Equal(t, int64(2900*5), line.Subtotal, "小计=单价×数量")
		assert.Equal(t, int64(2900*5), cart.Total)

		// 卖家改价后，购物车里立即是新价格
		updateReq := map[string]interface{}{"price": 1900}
		url := fmt.Sprintf("%s/books/%d", BaseURL, bookID)
		updateResp := PutJSON(t, url, updateReq, sellerToken)
		require.Equal(t, 0, updateResp.Code, "卖家改价失败")

		cart = GetCart(t, buyerToken)
		assert.Equal(t, int64(1900), cart.Lines[0].Price, "购物车应该显示实时价格")
		assert.Equal(t, int64(1900*5), cart.Total, "总价应该按新价格计算")

		t.Logf("✓ 实时价格验证通过，改价后总价: %s元", cart.TotalYuan)
	})

	t.Run("更新条目数量是覆盖语义", func(t *testing.T) {
		url := fmt.Sprintf("%s/cart/items/%d", BaseURL, bookID)
		req := map[string]interface{}{"quantity": 2}

		resp := PutJSON(t, url, req, buyerToken)
		require.Equal(t, 0, resp.Code, "更新条目失败: %s", resp.Message)

		var item CartItemData
		err := json.Unmarshal(resp.Data, &item)
		require.NoError(t, err, "解析更新响应失败")

		assert.Equal(t, 2, item.Quantity, "更新是覆盖而非累加")

		t.Logf("✓ 条目更新成功，数量改为: %d", item.Quantity)
	})

	t.Run("加购超过库存被拒绝", func(t *testing.T) {
		req := map[string]interface{}{
			"book_id":  bookID,
			"quantity": 99, // 购物车已有2本,库存10本
		}

		resp := PostJSON(t, BaseURL+"/cart/items", req, buyerToken)
		assert.NotEqual(t, 0, resp.Code, "超库存加购应该失败")
		assert.Contains(t, resp.Message, "库存不足", "错误信息应该提示库存不足")

		t.Logf("✓ 超库存加购正确被拒绝: %s", resp.Message)
	})

	t.Run("移除条目", func(t *testing.T) {
		url := fmt.Sprintf("%s/cart/items/%d", BaseURL, bookID)
		resp := DeleteJSON(t, url, buyerToken)
		require.Equal(t, 0, resp.Code, "移除条目失败: %s", resp.Message)

		cart := GetCart(t, buyerToken)
		assert.Empty(t, cart.Lines, "移除后购物车应该为空")

		// 再次移除应该返回404语义错误
		resp = DeleteJSON(t, url, buyerToken)
		assert.NotEqual(t, 0, resp.Code, "移除不存在的条目应该失败")

		t.Logf("✓ 条目移除成功")
	})

	t.Run("清空购物车幂等", func(t *testing.T) {
		AddToCart(t, buyerToken, bookID, 1)

		resp := DeleteJSON(t, BaseURL+"/cart", buyerToken)
		require.Equal(t, 0, resp.Code, "清空购物车失败")

		cart := GetCart(t, buyerToken)
		assert.Empty(t, cart.Lines, "清空后购物车应该为空")

		// 空车再清一次也应该成功（幂等）
		resp = DeleteJSON(t, BaseURL+"/cart", buyerToken)
		assert.Equal(t, 0, resp.Code, "清空空购物车也应该成功")

		t.Logf("✓ 清空购物车成功且幂等")
	})
}

// TestCheckoutFlow 测试结算流程
func TestCheckoutFlow(t *testing.T) {
	_, sellerToken := RegisterTestUser(t, "checkout_seller")
	_, buyerToken := RegisterTestUser(t, "checkout_buyer")

	bookA := PublishTestBook(t, sellerToken, "《结算测试A》", 2900, 10)
	bookB := PublishTestBook(t, sellerToken, "《结算测试B》", 9900, 5)

	t.Run("空购物车不能结算", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/cart/checkout", nil, buyerToken)

		assert.NotEqual(t, 0, resp.Code, "空购物车结算应该失败")
		assert.Contains(t, resp.Message, "购物车为空", "错误信息应该提示购物车为空")

		t.Logf("✓ 空购物车结算正确被拒绝: %s", resp.Message)
	})

	t.Run("正常结算", func(t *testing.T) {
		AddToCart(t, buyerToken, bookA, 2)
		AddToCart(t, buyerToken, bookB, 1)

		resp := PostJSON(t, BaseURL+"/cart/checkout", nil, buyerToken)
		require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

		var data PurchaseData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析结算响应失败")

		// 总额 = 2900*2 + 9900*1 = 15700分
		assert.Equal(t, int64(15700), data.Total, "总金额应该正确")
		assert.Equal(t, "157.00", data.TotalYuan)
		assert.NotEmpty(t, data.PurchaseNo, "应该返回购买单号")
		assert.Len(t, data.Items, 2, "应该有2条明细")

		// 结算后购物车被清空
		cart := GetCart(t, buyerToken)
		assert.Empty(t, cart.Lines, "结算后购物车应该被清空")

		// 库存被扣减
		bookURL := fmt.Sprintf("%s/books/%d", BaseURL, bookA)
		bookResp := GetJSON(t, bookURL, "")
		require.Equal(t, 0, bookResp.Code)

		var bookData BookData
		err = json.Unmarshal(bookResp.Data, &bookData)
		require.NoError(t, err)
		assert.Equal(t, 8, bookData.Stock, "库存应该从10扣到8")

		t.Logf("✓ 结算成功，单号: %s, 金额: %s元", data.PurchaseNo, data.TotalYuan)
	})

	t.Run("明细保留结算时刻的价格快照", func(t *testing.T) {
		AddToCart(t, buyerToken, bookA, 1)

		resp := PostJSON(t, BaseURL+"/cart/checkout", nil, buyerToken)
		require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

		var data PurchaseData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		purchaseNo := data.PurchaseNo

		// 卖家改价
		updateReq := map[string]interface{}{"price": 999}
		url := fmt.Sprintf("%s/books/%d", BaseURL, bookA)
		updateResp := PutJSON(t, url, updateReq, sellerToken)
		require.Equal(t, 0, updateResp.Code, "卖家改价失败")

		// 历史购买记录依然是结算时的价格
		historyURL := fmt.Sprintf("%s/purchases/%s", BaseURL, purchaseNo)
		historyResp := GetJSON(t, historyURL, buyerToken)
		require.Equal(t, 0, historyResp.Code, "查询购买记录失败")

		var history PurchaseData
		err = json.Unmarshal(historyResp.Data, &history)
		require.NoError(t, err)

		require.Len(t, history.Items, 1)
		assert.Equal(t, int64(2900), history.Items[0].Price, "历史记录应该保留结算时的价格快照")

		t.Logf("✓ 价格快照验证通过：改价后历史记录价格不变")
	})

	t.Run("库存不足整单失败", func(t *testing.T) {
		// bookB剩余库存4本(前面买走1本)
		AddToCart(t, buyerToken, bookB, 4)

		// 另一个买家先买走3本
		_, rivalToken := RegisterTestUser(t, "rival_buyer")
		AddToCart(t, rivalToken, bookB, 3)
		rivalResp := PostJSON(t, BaseURL+"/cart/checkout", nil, rivalToken)
		require.Equal(t, 0, rivalResp.Code, "对手结算失败: %s", rivalResp.Message)

		// 此时库存只剩1本,购物车里的4本不够
		resp := PostJSON(t, BaseURL+"/cart/checkout", nil, buyerToken)
		assert.NotEqual(t, 0, resp.Code, "库存不足结算应该失败")
		assert.NotEmpty(t, resp.Details, "应该返回库存不足的明细")

		// 整单失败:购物车保持原样,可供买家调整
		cart := GetCart(t, buyerToken)
		assert.Len(t, cart.Lines, 1, "失败后购物车应该保持原样")
		assert.Equal(t, 4, cart.Lines[0].Quantity)

		t.Logf("✓ 库存不足正确整单失败: %s, 明细: %v", resp.Message, resp.Details)
	})
}

// TestCheckoutConcurrency 测试并发结算防超卖
//
// 教学说明：这是整个项目最重要的测试
// 场景：一本书库存10本，20个买家同时各结算1本
// 预期：恰好10人成功，10人收到库存不足，库存恰好为0
//
// 实现原理：SELECT FOR UPDATE悲观锁
// 所有结算事务在图书行上排队，逐个扣减，不会超卖
func TestCheckoutConcurrency(t *testing.T) {
	_, sellerToken := RegisterTestUser(t, "concurrent_seller")

	const stock = 10
	const buyers = 20

	bookID := PublishTestBook(t, sellerToken, "《并发测试图书》", 2900, stock)

	// 准备20个买家,每人加购1本
	tokens := make([]string, buyers)
	for i := 0; i < buyers; i++ {
		_, token := RegisterTestUser(t, fmt.Sprintf("concurrent_buyer_%d", i))
		AddToCart(t, token, bookID, 1)
		tokens[i] = token
	}

	t.Logf("➜ %d个买家同时结算库存为%d的图书", buyers, stock)

	// 并发结算
	var wg sync.WaitGroup
	results := make(chan int, buyers)
	for _, token := range tokens {
		wg.Add(1)
		go func(tk string) {
			defer wg.Done()
			resp := PostJSON(t, BaseURL+"/cart/checkout", nil, tk)
			results <- resp.Code
		}(token)
	}
	wg.Wait()
	close(results)

	// 统计结果
	successCount := 0
	failCount := 0
	for code := range results {
		if code == 0 {
			successCount++
		} else {
			failCount++
		}
	}

	assert.Equal(t, stock, successCount, "成功数应该恰好等于库存数")
	assert.Equal(t, buyers-stock, failCount, "失败数应该是买家数-库存数")

	// 验证库存恰好为0
	bookURL := fmt.Sprintf("%s/books/%d", BaseURL, bookID)
	bookResp := GetJSON(t, bookURL, "")
	require.Equal(t, 0, bookResp.Code)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err)

	assert.Equal(t, 0, bookData.Stock, "库存应该恰好为0，不能为负")
	assert.False(t, bookData.Available, "库存清零后应该标记无货")

	t.Logf("✓ 并发测试通过：%d人成功，%d人失败，库存=%d", successCount, failCount, bookData.Stock)
}

// TestPurchaseHistory 测试购买历史查询
func TestPurchaseHistory(t *testing.T) {
	_, sellerToken := RegisterTestUser(t, "history_seller")
	_, buyerToken := RegisterTestUser(t, "history_buyer")

	bookID := PublishTestBook(t, sellerToken, "《历史测试图书》", 2900, 10)

	// 结算两次,产生两条购买记录
	var purchaseNos []string
	for i := 0; i < 2; i++ {
		AddToCart(t, buyerToken, bookID, 1)
		resp := PostJSON(t, BaseURL+"/cart/checkout", nil, buyerToken)
		require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

		var data PurchaseData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		purchaseNos = append(purchaseNos, data.PurchaseNo)
	}

	t.Run("购买历史按时间倒序", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/purchases", buyerToken)
		require.Equal(t, 0, resp.Code, "查询购买历史失败: %s", resp.Message)

		var data PurchaseListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(data.List), 2, "应该至少有2条记录")
		assert.Equal(t, purchaseNos[1], data.List[0].PurchaseNo, "最新的记录应该排在最前")

		t.Logf("✓ 购买历史查询成功，共%d条记录", data.Total)
	})

	t.Run("按单号查询购买记录", func(t *testing.T) {
		url := fmt.Sprintf("%s/purchases/%s", BaseURL, purchaseNos[0])
		resp := GetJSON(t, url, buyerToken)
		require.Equal(t, 0, resp.Code, "查询购买记录失败: %s", resp.Message)

		var data PurchaseData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, purchaseNos[0], data.PurchaseNo)
		assert.Len(t, data.Items, 1)
		assert.Equal(t, "《历史测试图书》", data.Items[0].Title, "明细应该保留书名快照")

		t.Logf("✓ 单号查询成功: %s", data.PurchaseNo)
	})

	t.Run("不能查看他人的购买记录", func(t *testing.T) {
		// 教学说明：防遍历设计
		// 他人的记录返回404而非403，避免向攻击者确认单号存在
		_, otherToken := RegisterTestUser(t, "history_other")

		url := fmt.Sprintf("%s/purchases/%s", BaseURL, purchaseNos[0])
		resp := GetJSON(t, url, otherToken)

		assert.NotEqual(t, 0, resp.Code, "查看他人记录应该失败")
		assert.Contains(t, resp.Message, "不存在", "应该返回不存在而非无权限")

		t.Logf("✓ 他人记录正确返回404语义: %s", resp.Message)
	})

	t.Run("未登录不能查看购买历史", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/purchases", "")
		assert.NotEqual(t, 0, resp.Code, "未登录应该被拒绝")

		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})
}
